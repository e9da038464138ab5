package analyze

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"

	"marshaller-generator/internal/diagnostic"
)

// Discoverer finds every declaration carrying a column annotation.
type Discoverer struct {
	tag       string
	directive string
	sink      diagnostic.Sink
}

// NewDiscoverer returns a Discoverer recognising the struct tag key tag and
// the comment directive //<directive>. Malformed annotations go to sink.
func NewDiscoverer(tag, directive string, sink diagnostic.Sink) *Discoverer {
	return &Discoverer{tag: tag, directive: directive, sink: sink}
}

// Discover returns the annotated elements of pkgs in file and source order.
func (d *Discoverer) Discover(pkgs []*Package) []Element {
	var out []Element

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			w := &walker{d: d, pkg: pkg}
			w.walk(file)
			out = append(out, w.found...)
		}
	}

	return out
}

type walker struct {
	d     *Discoverer
	pkg   *Package
	found []Element
}

func (w *walker) walk(file *ast.File) {
	var stack []ast.Node

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]

			return true
		}

		w.visit(n, stack)
		stack = append(stack, n)

		return true
	})
}

func (w *walker) position(p token.Pos) token.Position {
	return w.pkg.Fset.Position(p)
}

// visit inspects n; stack holds its ancestors, innermost last.
func (w *walker) visit(n ast.Node, stack []ast.Node) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		kind := KindFunc
		if n.Recv != nil {
			kind = KindMethod
		}

		w.simple(kind, n.Name, nil, n.Doc)

	case *ast.GenDecl:
		w.genDecl(n, insideFunc(stack))

	case *ast.Field:
		if len(stack) < 2 {
			return
		}

		if _, ok := stack[len(stack)-1].(*ast.FieldList); !ok {
			return
		}

		switch owner := stack[len(stack)-2].(type) {
		case *ast.StructType:
			w.structField(n, owner, stack[:len(stack)-2])
		case *ast.InterfaceType:
			for _, name := range n.Names {
				w.simple(KindInterfaceMethod, name, nil, n.Doc, n.Comment)
			}
		}
	}
}

func (w *walker) genDecl(decl *ast.GenDecl, local bool) {
	for _, spec := range decl.Specs {
		var docs []*ast.CommentGroup

		switch s := spec.(type) {
		case *ast.ValueSpec:
			docs = append(docs, s.Doc, s.Comment)
			if !decl.Lparen.IsValid() {
				docs = append(docs, decl.Doc)
			}

			kind := valueKind(decl.Tok, local)
			for _, name := range s.Names {
				w.simple(kind, name, nil, docs...)
			}

		case *ast.TypeSpec:
			docs = append(docs, s.Doc, s.Comment)
			if !decl.Lparen.IsValid() {
				docs = append(docs, decl.Doc)
			}

			w.simple(KindTypeDecl, s.Name, nil, docs...)
		}
	}
}

func valueKind(tok token.Token, local bool) ElementKind {
	switch {
	case tok == token.CONST && local:
		return KindLocalConst
	case tok == token.CONST:
		return KindConst
	case local:
		return KindLocalVar
	default:
		return KindPackageVar
	}
}

// simple records a non-field element when it is annotated.
func (w *walker) simple(kind ElementKind, name *ast.Ident, tag *ast.BasicLit, docs ...*ast.CommentGroup) {
	pos := w.position(name.Pos())

	ann, ok := w.annotation(pos, name.Name, tag, docs...)
	if !ok {
		return
	}

	w.found = append(w.found, Element{
		Kind:       kind,
		Name:       name.Name,
		Pos:        pos,
		Annotation: ann,
		Exported:   ast.IsExported(name.Name),
		Package:    w.pkg,
	})
}

func (w *walker) structField(field *ast.Field, st *ast.StructType, ancestors []ast.Node) {
	idents := field.Names
	embedded := len(idents) == 0

	if embedded {
		id := embeddedIdent(field.Type)
		if id == nil {
			return
		}

		idents = []*ast.Ident{id}
	}

	var enc *Enclosing

	for _, id := range idents {
		pos := w.position(id.Pos())

		ann, ok := w.annotation(pos, id.Name, field.Tag, field.Doc, field.Comment)
		if !ok {
			continue
		}

		if enc == nil {
			e := w.enclosing(st, ancestors)
			enc = &e
		}

		v, _ := w.pkg.Info.Defs[id].(*types.Var)

		w.found = append(w.found, Element{
			Kind:       KindField,
			Name:       id.Name,
			Pos:        pos,
			Annotation: ann,
			Exported:   ast.IsExported(id.Name),
			Embedded:   embedded,
			Var:        v,
			Enclosing:  *enc,
			Package:    w.pkg,
		})
	}
}

// enclosing classifies the struct type st given its ancestors.
func (w *walker) enclosing(st *ast.StructType, ancestors []ast.Node) Enclosing {
	local := insideFunc(ancestors)

	var ts *ast.TypeSpec
	if len(ancestors) > 0 {
		ts, _ = ancestors[len(ancestors)-1].(*ast.TypeSpec)
	}

	if ts == nil || ts.Type != st {
		kind := EnclosingAnonymous
		if local {
			kind = EnclosingLocal
		}

		return Enclosing{Kind: kind, Pos: w.position(st.Pos())}
	}

	obj, _ := w.pkg.Info.Defs[ts.Name].(*types.TypeName)
	enc := Enclosing{
		Name:     ts.Name.Name,
		Pos:      w.position(ts.Name.Pos()),
		Exported: ast.IsExported(ts.Name.Name),
		Object:   obj,
	}

	switch {
	case local:
		enc.Kind = EnclosingLocal
	case ts.Assign.IsValid():
		enc.Kind = EnclosingAlias
	case ts.TypeParams != nil && ts.TypeParams.NumFields() > 0:
		enc.Kind = EnclosingGeneric
	default:
		enc.Kind = EnclosingNamed
	}

	return enc
}

// annotation combines the tag and directive forms. Malformed annotations are
// reported and ok is false.
func (w *walker) annotation(pos token.Position, name string, tag *ast.BasicLit, docs ...*ast.CommentGroup) (Annotation, bool) {
	tagAnn, hasTag, err := parseTag(tag, w.d.tag)
	if err != nil {
		w.reportBad(pos, name, err)

		return Annotation{}, false
	}

	args, hasDir := findDirective(w.d.directive, docs...)
	if !hasDir {
		return tagAnn, hasTag
	}

	dirAnn, err := ParseDirectiveArgs(args)
	if err != nil {
		w.reportBad(pos, name, err)

		return Annotation{}, false
	}

	if !hasTag {
		return dirAnn, true
	}

	return merge(tagAnn, dirAnn), true
}

func (w *walker) reportBad(pos token.Position, name string, err error) {
	diag := diagnostic.NewError(diagnostic.CodeBadDirective, "malformed column annotation: "+err.Error(), pos, "", name)

	var annErr *AnnotationError
	if errors.As(err, &annErr) && annErr.Suggestion != "" {
		diag.Suggestions = []string{annErr.Suggestion}
	}

	w.d.sink.Report(diag)
}

func insideFunc(stack []ast.Node) bool {
	for _, n := range stack {
		switch n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return true
		}
	}

	return false
}

// embeddedIdent returns the identifier naming an embedded field's type.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	case *ast.ParenExpr:
		return embeddedIdent(e.X)
	default:
		return nil
	}
}
