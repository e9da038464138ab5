package analyze

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagValue(t *testing.T) {
	tests := []struct {
		value   string
		want    Annotation
		wantErr string
	}{
		{value: "", want: Annotation{}},
		{value: "title", want: Annotation{Name: "title"}},
		{value: " title ", want: Annotation{Name: "title"}},
		{value: ",default=0", want: Annotation{Default: "0"}},
		{value: "copies,default=1", want: Annotation{Name: "copies", Default: "1"}},
		{value: "list,default=a,b", want: Annotation{Name: "list", Default: "a,b"}},
		{value: "list, default=x", want: Annotation{Name: "list", Default: "x"}},
		{value: "count,omitempty", wantErr: `unknown tag option "omitempty"`},
		{value: "count,defualt=1", wantErr: `unknown tag option "defualt"`},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTagValue(tt.value)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.want.Source = SourceTag
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTagValue_SuggestsDefault(t *testing.T) {
	_, err := ParseTagValue("count,defualt=1")

	var annErr *AnnotationError
	require.ErrorAs(t, err, &annErr)
	assert.Equal(t, "default", annErr.Suggestion)
}

func TestParseDirectiveArgs(t *testing.T) {
	tests := []struct {
		args    string
		want    Annotation
		wantErr string
		suggest string
	}{
		{args: "", want: Annotation{}},
		{args: "name=subtitle", want: Annotation{Name: "subtitle"}},
		{args: `name=subtitle default="none"`, want: Annotation{Name: "subtitle", Default: "none"}},
		{args: `default="a b"   name=x`, want: Annotation{Name: "x", Default: "a b"}},
		{args: "default=`raw \"q\"`", want: Annotation{Default: `raw "q"`}},
		{args: `default=""`, want: Annotation{}},
		{args: "nmae=x", wantErr: `unknown key "nmae"`, suggest: "name"},
		{args: "name", wantErr: `expected key=value, got "name"`, suggest: "name"},
		{args: "name=a name=b", wantErr: `duplicate key "name"`},
		{args: `default="open`, wantErr: "bad value for default: unterminated or invalid quoted string"},
		{args: `default="a"b`, wantErr: `bad value for default: missing space after "a"`},
		{args: `name=a"b`, wantErr: `bad value for name: stray quote in "a\"b"`},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			got, err := ParseDirectiveArgs(tt.args)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)

				var annErr *AnnotationError
				require.ErrorAs(t, err, &annErr)
				assert.Equal(t, tt.suggest, annErr.Suggestion)

				return
			}

			require.NoError(t, err)
			tt.want.Source = SourceDirective
			assert.Equal(t, tt.want, got)
		})
	}
}

func comments(lines ...string) *ast.CommentGroup {
	g := &ast.CommentGroup{}
	for _, l := range lines {
		g.List = append(g.List, &ast.Comment{Slash: token.NoPos, Text: l})
	}

	return g
}

func TestFindDirective(t *testing.T) {
	tests := []struct {
		name     string
		groups   []*ast.CommentGroup
		wantArgs string
		wantOK   bool
	}{
		{"bare", []*ast.CommentGroup{comments("//orm:column")}, "", true},
		{"with args", []*ast.CommentGroup{comments("// Title.", "//orm:column name=t")}, "name=t", true},
		{"longer directive", []*ast.CommentGroup{comments("//orm:columns")}, "", false},
		{"spaced comment", []*ast.CommentGroup{comments("// orm:column")}, "", false},
		{"nil groups", []*ast.CommentGroup{nil, nil}, "", false},
		{"second group", []*ast.CommentGroup{nil, comments("//orm:column default=1")}, "default=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, ok := findDirective("orm:column", tt.groups...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMerge(t *testing.T) {
	tag := Annotation{Name: "title", Default: "x", Source: SourceTag}

	assert.Equal(t, Annotation{Name: "title", Default: "x", Source: SourceDirective},
		merge(tag, Annotation{Source: SourceDirective}))
	assert.Equal(t, Annotation{Name: "heading", Default: "x", Source: SourceDirective},
		merge(tag, Annotation{Name: "heading", Source: SourceDirective}))
}
