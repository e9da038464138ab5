package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"marshaller-generator/internal/naming"
)

// Annotation keys, shared by the tag and directive forms.
const (
	keyName    = "name"
	keyDefault = "default"
)

var annotationKeys = []string{keyName, keyDefault}

// AnnotationError reports a malformed tag or directive.
type AnnotationError struct {
	Msg        string
	Suggestion string
}

func (e *AnnotationError) Error() string {
	return e.Msg
}

// parseTag reads the annotation from a raw struct tag literal (with quotes).
// ok is false when the tag does not carry key.
func parseTag(lit *ast.BasicLit, key string) (ann Annotation, ok bool, err error) {
	if lit == nil {
		return Annotation{}, false, nil
	}

	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return Annotation{}, false, nil
	}

	value, ok := reflect.StructTag(raw).Lookup(key)
	if !ok {
		return Annotation{}, false, nil
	}

	ann, err = ParseTagValue(value)

	return ann, true, err
}

// ParseTagValue parses a tag value such as "title,default=untitled". The
// default option takes the rest of the value, commas included.
func ParseTagValue(value string) (Annotation, error) {
	ann := Annotation{Source: SourceTag}

	name, rest, _ := strings.Cut(value, ",")
	ann.Name = strings.TrimSpace(name)

	for rest != "" {
		var opt string

		rest = strings.TrimLeft(rest, " ")

		if strings.HasPrefix(rest, keyDefault+"=") {
			ann.Default = strings.TrimPrefix(rest, keyDefault+"=")

			break
		}

		opt, rest, _ = strings.Cut(rest, ",")

		key, _, _ := strings.Cut(opt, "=")
		key = strings.TrimSpace(key)

		if key == "" {
			continue
		}

		return ann, &AnnotationError{
			Msg:        fmt.Sprintf("unknown tag option %q", key),
			Suggestion: naming.Suggest(key, []string{keyDefault}),
		}
	}

	return ann, nil
}

// findDirective returns the arguments of the first comment line that starts
// with //<directive>. ok is false when no such line exists.
func findDirective(directive string, groups ...*ast.CommentGroup) (args string, ok bool) {
	prefix := "//" + directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}

			rest := c.Text[len(prefix):]
			if rest != "" && !unicode.IsSpace(rune(rest[0])) {
				// e.g. //orm:columns for directive orm:column
				continue
			}

			return strings.TrimSpace(rest), true
		}
	}

	return "", false
}

// ParseDirectiveArgs parses `name=title default="a b"`. Values are bare words
// or Go quoted strings.
func ParseDirectiveArgs(args string) (Annotation, error) {
	ann := Annotation{Source: SourceDirective}
	seen := make(map[string]bool, len(annotationKeys))

	rest := strings.TrimSpace(args)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		sp := strings.IndexFunc(rest, unicode.IsSpace)

		if eq < 0 || (sp >= 0 && sp < eq) {
			word := rest
			if sp >= 0 {
				word = rest[:sp]
			}

			return ann, &AnnotationError{
				Msg:        fmt.Sprintf("expected key=value, got %q", word),
				Suggestion: naming.Suggest(word, annotationKeys),
			}
		}

		key := rest[:eq]
		rest = rest[eq+1:]

		var (
			value string
			err   error
		)

		value, rest, err = cutValue(rest)
		if err != nil {
			return ann, &AnnotationError{Msg: fmt.Sprintf("bad value for %s: %v", key, err)}
		}

		if seen[key] {
			return ann, &AnnotationError{Msg: fmt.Sprintf("duplicate key %q", key)}
		}

		seen[key] = true

		switch key {
		case keyName:
			ann.Name = value
		case keyDefault:
			ann.Default = value
		default:
			return ann, &AnnotationError{
				Msg:        fmt.Sprintf("unknown key %q", key),
				Suggestion: naming.Suggest(key, annotationKeys),
			}
		}

		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}

	return ann, nil
}

// cutValue splits one value off the front of s.
func cutValue(s string) (value, rest string, err error) {
	if s != "" && (s[0] == '"' || s[0] == '`') {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", s, errors.New("unterminated or invalid quoted string")
		}

		value, err = strconv.Unquote(quoted)
		if err != nil {
			return "", s, err
		}

		rest = s[len(quoted):]
		if rest != "" && !unicode.IsSpace(rune(rest[0])) {
			return "", s, fmt.Errorf("missing space after %s", quoted)
		}

		return value, rest, nil
	}

	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		end = len(s)
	}

	value = s[:end]
	if strings.ContainsAny(value, `"`+"`") {
		return "", s, fmt.Errorf("stray quote in %q", value)
	}

	return value, s[end:], nil
}

// merge overlays the directive's non-empty values on the tag annotation.
func merge(tag, directive Annotation) Annotation {
	out := tag

	if directive.Name != "" {
		out.Name = directive.Name
	}

	if directive.Default != "" {
		out.Default = directive.Default
	}

	out.Source = SourceDirective

	return out
}
