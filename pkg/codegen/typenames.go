package codegen

import (
	"slices"
	"strings"
	"unicode"
)

// localize drops qualifiers naming pkg from a type name, since generated
// code lives in pkg.
func localize(typeName, pkg string) string {
	if pkg == "" || !strings.Contains(typeName, pkg+".") {
		return typeName
	}
	var b strings.Builder
	last := 0
	for _, id := range identifiers(typeName) {
		if id.selector || id.end >= len(typeName) || typeName[id.end] != '.' || typeName[id.start:id.end] != pkg {
			continue
		}
		b.WriteString(typeName[last:id.start])
		last = id.end + 1
	}
	b.WriteString(typeName[last:])
	return b.String()
}

// substituteTypeParameters replaces whole-word type parameter names.
func substituteTypeParameters(typeName string, args map[string]string) string {
	if len(args) == 0 {
		return typeName
	}
	var b strings.Builder
	last := 0
	for _, id := range identifiers(typeName) {
		arg, ok := args[typeName[id.start:id.end]]
		if id.selector || !ok {
			continue
		}
		b.WriteString(typeName[last:id.start])
		b.WriteString(arg)
		last = id.end
	}
	b.WriteString(typeName[last:])
	return b.String()
}

// mentionsTypeParameter reports whether typeName refers to one of params.
func mentionsTypeParameter(typeName string, params []string) bool {
	if len(params) == 0 {
		return false
	}
	for _, id := range identifiers(typeName) {
		if !id.selector && slices.Contains(params, typeName[id.start:id.end]) {
			return true
		}
	}
	return false
}

// ident locates an identifier in a type name. Selectors follow a dot, as
// Row in "ui.Row", and never name a package or type parameter.
type ident struct {
	start, end int
	selector   bool
}

func identifiers(s string) []ident {
	var out []ident
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, ident{start: start, end: end, selector: start > 0 && s[start-1] == '.'})
			start = -1
		}
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(s))
	return out
}

// typeArgumentOf returns the type argument of a single-argument
// instantiation of generic, e.g. "render.EventCallbackOf[ui.Row]" with
// generic "EventCallbackOf" yields "ui.Row".
func typeArgumentOf(typeName, generic string) (string, bool) {
	open := strings.IndexByte(typeName, '[')
	if open < 0 || !strings.HasSuffix(typeName, "]") {
		return "", false
	}
	base := typeName[:open]
	if base != generic && !strings.HasSuffix(base, "."+generic) {
		return "", false
	}
	arg := strings.TrimSpace(typeName[open+1 : len(typeName)-1])
	if arg == "" || topLevelComma(arg) {
		return "", false
	}
	return arg, true
}

func topLevelComma(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// conversionType returns typeName in a form usable as a conversion, adding
// parentheses around unnamed types such as func literals.
func conversionType(typeName string) string {
	for _, prefix := range []string{"func", "*", "[", "map[", "chan", "<-", "struct", "interface"} {
		if strings.HasPrefix(typeName, prefix) {
			return "(" + typeName + ")"
		}
	}
	return typeName
}

// shortName turns "ui.Grid[T]" into "Grid".
func shortName(typeName string) string {
	if i := strings.IndexByte(typeName, '['); i >= 0 {
		typeName = typeName[:i]
	}
	if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
		typeName = typeName[i+1:]
	}
	return typeName
}
