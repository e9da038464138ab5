// Package analyze provides package loading, annotation discovery and
// validation.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find every
// declaration carrying a column annotation, either the struct tag
//
//	Title string `orm:"title,default=untitled"`
//
// or the comment directive
//
//	//orm:column name=title default="untitled"
//	Title string
//
// and groups the valid ones by their enclosing model struct.
//
// Key types:
//   - Element: one annotated declaration, valid or not
//   - Model: an exported, defined, non-generic struct type
//   - FieldGroup: a model and its valid annotated fields, in declaration order
package analyze
