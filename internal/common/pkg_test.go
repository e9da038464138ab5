package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"time", "time"},
		{"marshaller-generator/orm", "orm"},
		{"github.com/google/uuid", "uuid"},
		{"github.com/goccy/go-json", "gojson"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/jackc/pgx/v5", "pgx"},
		{"example.com/3d", "pkg3d"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, PkgAlias(tt.path))
		})
	}
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
}
