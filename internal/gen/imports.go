package gen

import (
	"cmp"
	"go/types"
	"path"
	"slices"
	"strconv"

	"marshaller-generator/internal/common"
)

// reservedLocals are the identifiers generated methods declare; an import
// alias must never be shadowed by them.
var reservedLocals = []string{"m", "ok", "model", "cursor", "values", "columns", "i", "err"}

// importSet collects the packages referenced by one generated file.
type importSet struct {
	self   *types.Package
	byPath map[string]string
	taken  map[string]bool
}

func newImportSet(self *types.Package) *importSet {
	s := &importSet{
		self:   self,
		byPath: make(map[string]string),
		taken:  make(map[string]bool),
	}

	for _, name := range reservedLocals {
		s.taken[name] = true
	}

	return s
}

// add records pkgPath and returns its alias. name is the package's declared
// name, or empty when unknown.
func (s *importSet) add(pkgPath, name string) string {
	if s.self != nil && pkgPath == s.self.Path() {
		return ""
	}

	if alias, ok := s.byPath[pkgPath]; ok {
		return alias
	}

	if name == "" {
		name = s.knownName(pkgPath)
	}

	alias := name
	for n := 2; s.unavailable(alias); n++ {
		alias = name + strconv.Itoa(n)
	}

	s.byPath[pkgPath] = alias
	s.taken[alias] = true

	return alias
}

// knownName finds the declared name of pkgPath among the model package's
// imports, falling back to the path's last element.
func (s *importSet) knownName(pkgPath string) string {
	if s.self != nil {
		for _, imp := range s.self.Imports() {
			if imp.Path() == pkgPath {
				return imp.Name()
			}
		}
	}

	return common.PkgAlias(pkgPath)
}

func (s *importSet) unavailable(alias string) bool {
	if s.taken[alias] {
		return true
	}

	return s.self != nil && s.self.Scope().Lookup(alias) != nil
}

// qualifier is a types.Qualifier that records every package it qualifies.
func (s *importSet) qualifier(p *types.Package) string {
	return s.add(p.Path(), p.Name())
}

// typeString renders t as it must appear in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// specs returns the imports sorted by path. An alias is spelled out only
// when it differs from the path's last element.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for p, alias := range s.byPath {
		spec := importSpec{Path: p}
		if alias != path.Base(p) {
			spec.Alias = alias
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return out
}
