package descriptor

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/mod/module"
)

// SplitTypeName splits "example.com/widgets/v2.Button" into its import path
// and type name. Names without a qualifier have an empty path.
func SplitTypeName(fullName string) (pkgPath, name string) {
	head := fullName
	if i := strings.IndexByte(head, '['); i >= 0 {
		head = head[:i]
	}
	slash := strings.LastIndexByte(head, '/')
	dot := strings.LastIndexByte(head[slash+1:], '.')
	if dot < 0 {
		return "", fullName
	}
	dot += slash + 1
	return fullName[:dot], fullName[dot+1:]
}

// SourceName writes a fully-qualified type name the way Go source refers to
// it: qualified by pkgName. When pkgName is empty and the qualifier is an
// import path, the package name is assumed from the path; other qualifiers
// are kept as they are.
func SourceName(fullName, pkgName string) string {
	pkgPath, name := SplitTypeName(fullName)
	if pkgPath == "" {
		return fullName
	}
	if pkgName == "" {
		if !strings.Contains(pkgPath, "/") {
			return fullName
		}
		pkgName = AssumedPackageName(pkgPath)
	}
	return pkgName + "." + name
}

// AssumedPackageName guesses the package name of an import path: a major
// version suffix is dropped, then a "go-" prefix, then everything from the
// first character that cannot appear in an identifier.
func AssumedPackageName(importPath string) string {
	if prefix, _, ok := module.SplitPathVersion(importPath); ok && prefix != "" {
		importPath = prefix
	}
	base := strings.TrimPrefix(path.Base(importPath), "go-")
	if i := strings.IndexFunc(base, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}); i >= 0 {
		base = base[:i]
	}
	return base
}
