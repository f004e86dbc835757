// Package gotypes implements catalog.Catalog over Go packages loaded with
// golang.org/x/tools/go/packages.
//
// Go has no attributes, so they are read from two conventions:
//
//   - struct tags on fields: `compgen:"parameter"` becomes an attribute of
//     type "compgen:parameter";
//   - marker comments on type declarations:
//     //compgen:eventhandler onclick example.com/render.MouseEventArgs preventDefault=true
//     becomes an attribute of type "compgen:eventhandler" with two positional
//     and one named argument.
//
// Every Go package is both a program and its single namespace.
package gotypes

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/njreid/compgen/pkg/catalog"
)

// DefaultMarker is the tag key and comment prefix used for attributes.
const DefaultMarker = "compgen"

// Config controls which packages are loaded.
type Config struct {
	// Dir is the directory packages are resolved from.
	Dir string
	// Patterns are go/packages patterns, "./..." when empty.
	Patterns []string
	// Env overrides the environment of the underlying go command.
	Env []string
	// Marker is the struct tag key and comment prefix, DefaultMarker when empty.
	Marker string
	// Interfaces lists fully-qualified interface names recorded in
	// catalog.Type.Interfaces when a type (or a pointer to it) implements them.
	Interfaces []string
	// IncludeDependencies adds every transitively imported package as a
	// referenced program.
	IncludeDependencies bool
}

// Catalog is a catalog.Catalog over loaded Go packages. Symbols are
// converted lazily; methods are safe for concurrent use.
type Catalog struct {
	cfg      Config
	programs []*catalog.Program
	pkgs     map[*catalog.Program]*packages.Package
	byPath   map[string]*packages.Package
	ns       map[*catalog.Program]*catalog.Namespace

	mu         sync.Mutex
	types      map[*types.TypeName]*catalog.Type
	symbols    map[catalog.Symbol]types.Object
	members    map[catalog.Symbol][]catalog.Symbol
	attributes map[catalog.Symbol][]catalog.Attribute
	docs       map[*types.TypeName]*ast.CommentGroup
	enums      map[*types.TypeName]bool
	ifaces     map[string]*types.Interface
}

var (
	_ catalog.Catalog           = (*Catalog)(nil)
	_ catalog.AttributeResolver = (*Catalog)(nil)
)

// Load type-checks the configured packages.
func Load(ctx context.Context, cfg Config) (*Catalog, error) {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"./..."}
	}
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	pcfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedSyntax | packages.NeedImports | packages.NeedDeps,
		Dir: cfg.Dir,
		Env: cfg.Env,
	}
	roots, err := packages.Load(pcfg, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages %v: %w", cfg.Patterns, err)
	}
	var errs []string
	packages.Visit(roots, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			errs = append(errs, e.Error())
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %s", strings.Join(errs, "; "))
	}
	return New(cfg, roots), nil
}

// New builds a catalog over already loaded packages. Roots become the
// leading programs, sorted by import path.
func New(cfg Config, roots []*packages.Package) *Catalog {
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	c := &Catalog{
		cfg:        cfg,
		pkgs:       make(map[*catalog.Program]*packages.Package),
		byPath:     make(map[string]*packages.Package),
		ns:         make(map[*catalog.Program]*catalog.Namespace),
		types:      make(map[*types.TypeName]*catalog.Type),
		symbols:    make(map[catalog.Symbol]types.Object),
		members:    make(map[catalog.Symbol][]catalog.Symbol),
		attributes: make(map[catalog.Symbol][]catalog.Attribute),
		docs:       make(map[*types.TypeName]*ast.CommentGroup),
		enums:      make(map[*types.TypeName]bool),
		ifaces:     make(map[string]*types.Interface),
	}

	sorted := slices.Clone(roots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PkgPath < sorted[j].PkgPath })
	for _, p := range sorted {
		c.addPackage(p)
	}
	if cfg.IncludeDependencies {
		var deps []*packages.Package
		packages.Visit(sorted, nil, func(p *packages.Package) {
			if _, ok := c.byPath[p.PkgPath]; !ok {
				deps = append(deps, p)
			}
		})
		sort.Slice(deps, func(i, j int) bool { return deps[i].PkgPath < deps[j].PkgPath })
		for _, p := range deps {
			c.addPackage(p)
		}
	} else {
		// Packages that declare the configured interfaces still need to be
		// resolvable by name.
		packages.Visit(sorted, nil, func(p *packages.Package) {
			if _, ok := c.byPath[p.PkgPath]; !ok {
				c.byPath[p.PkgPath] = p
			}
		})
	}

	for _, name := range cfg.Interfaces {
		if obj := c.lookup(name); obj != nil {
			if iface, ok := obj.Type().Underlying().(*types.Interface); ok {
				c.ifaces[name] = iface
			}
		}
	}
	for _, p := range c.programs {
		c.collectDocs(c.pkgs[p])
	}
	return c
}

func (c *Catalog) addPackage(p *packages.Package) {
	if p.Types == nil {
		return
	}
	prog := &catalog.Program{Name: p.PkgPath}
	c.programs = append(c.programs, prog)
	c.pkgs[prog] = p
	c.byPath[p.PkgPath] = p
	ns := &catalog.Namespace{Name: p.Name, Path: p.PkgPath, Program: prog}
	c.ns[prog] = ns
	c.members[prog] = []catalog.Symbol{ns}
}

func (c *Catalog) Programs() []*catalog.Program { return slices.Clone(c.programs) }

// ResolveByName resolves "import/path.Name".
func (c *Catalog) ResolveByName(fullName string) (*catalog.Type, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj := c.lookup(fullName)
	if obj == nil {
		return nil, false
	}
	return c.typeOf(obj), true
}

func (c *Catalog) lookup(fullName string) *types.TypeName {
	lastDot := strings.LastIndex(fullName, ".")
	if lastDot == -1 {
		return nil
	}
	pkg, ok := c.byPath[fullName[:lastDot]]
	if !ok || pkg.Types == nil {
		return nil
	}
	tn, _ := pkg.Types.Scope().Lookup(fullName[lastDot+1:]).(*types.TypeName)
	return tn
}

// ResolveAttribute reports whether name is an attribute of this catalog's
// marker convention, or a type that can be resolved.
func (c *Catalog) ResolveAttribute(fullName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.HasPrefix(fullName, c.cfg.Marker+":") {
		return true
	}
	return c.lookup(fullName) != nil
}

func (c *Catalog) EnumerateMembers(container catalog.Symbol) []catalog.Symbol {
	c.mu.Lock()
	defer c.mu.Unlock()
	if members, ok := c.members[container]; ok {
		return slices.Clone(members)
	}
	var members []catalog.Symbol
	switch s := container.(type) {
	case *catalog.Namespace:
		for _, tn := range c.declaredTypes(c.pkgs[s.Program]) {
			members = append(members, c.typeOf(tn))
		}
	case *catalog.Type:
		members = c.properties(s)
	}
	c.members[container] = members
	return slices.Clone(members)
}

func (c *Catalog) AttributesOf(sym catalog.Symbol) []catalog.Attribute {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attrs, ok := c.attributes[sym]; ok {
		return slices.Clone(attrs)
	}
	var attrs []catalog.Attribute
	if t, ok := sym.(*catalog.Type); ok {
		if tn, ok := c.symbols[t].(*types.TypeName); ok {
			attrs = parseMarkers(c.cfg.Marker, c.docs[tn])
		}
	}
	c.attributes[sym] = attrs
	return slices.Clone(attrs)
}

// declaredTypes returns the package-level type names of p in source order
// when syntax is available, otherwise sorted by name.
func (c *Catalog) declaredTypes(p *packages.Package) []*types.TypeName {
	if p == nil || p.Types == nil {
		return nil
	}
	var out []*types.TypeName
	if len(p.Syntax) > 0 && p.TypesInfo != nil {
		for _, f := range p.Syntax {
			for _, decl := range f.Decls {
				gd, ok := decl.(*ast.GenDecl)
				if !ok {
					continue
				}
				for _, spec := range gd.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if tn, ok := p.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
						out = append(out, tn)
					}
				}
			}
		}
		return out
	}
	scope := p.Types.Scope()
	for _, name := range scope.Names() {
		if tn, ok := scope.Lookup(name).(*types.TypeName); ok {
			out = append(out, tn)
		}
	}
	return out
}

func (c *Catalog) collectDocs(p *packages.Package) {
	if p == nil || p.TypesInfo == nil {
		return
	}
	for _, f := range p.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				tn, ok := p.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				c.docs[tn] = doc
			}
		}
	}
}

func (c *Catalog) typeOf(tn *types.TypeName) *catalog.Type {
	if t, ok := c.types[tn]; ok {
		return t
	}
	t := &catalog.Type{
		Name:   tn.Name(),
		Public: tn.Exported(),
		Kind:   c.kindOf(tn),
	}
	if pkg := tn.Pkg(); pkg != nil {
		t.Namespace = pkg.Path()
		t.Package = pkg.Name()
		for prog, p := range c.pkgs {
			if p.Types == pkg {
				t.Program = prog
				break
			}
		}
	}
	c.types[tn] = t
	c.symbols[t] = tn

	t.Abstract = t.Kind == catalog.KindInterface
	if named, ok := tn.Type().(*types.Named); ok {
		for i := 0; i < named.TypeParams().Len(); i++ {
			tp := named.TypeParams().At(i)
			t.TypeParameters = append(t.TypeParameters, tp.Obj().Name())
			t.TypeParameterConstraints = append(t.TypeParameterConstraints,
				types.TypeString(tp.Constraint(), qualifier(tn.Pkg())))
		}
	}
	if doc := c.docs[tn]; doc != nil {
		t.Documentation = strings.TrimSpace(stripMarkers(c.cfg.Marker, doc.Text()))
	}
	if st, ok := tn.Type().Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				ft := f.Type()
				if p, ok := ft.(*types.Pointer); ok {
					ft = p.Elem()
				}
				t.Base = c.typeRef(ft, tn.Pkg())
				break
			}
		}
	}
	subject := instantiated(tn.Type())
	for _, name := range c.cfg.Interfaces {
		iface, ok := c.ifaces[name]
		if !ok {
			continue
		}
		if types.Implements(subject, iface) || types.Implements(types.NewPointer(subject), iface) {
			t.Interfaces = append(t.Interfaces, name)
		}
	}
	return t
}

// instantiated returns a generic named type instantiated with its own type
// parameters; types.Implements is unspecified for uninstantiated types.
func instantiated(t types.Type) types.Type {
	named, ok := t.(*types.Named)
	if !ok || named.TypeParams().Len() == 0 {
		return t
	}
	args := make([]types.Type, named.TypeParams().Len())
	for i := range args {
		args[i] = named.TypeParams().At(i)
	}
	inst, err := types.Instantiate(nil, named, args, false)
	if err != nil {
		return t
	}
	return inst
}

func (c *Catalog) kindOf(tn *types.TypeName) catalog.TypeKind {
	switch u := tn.Type().Underlying().(type) {
	case *types.Interface:
		return catalog.KindInterface
	case *types.Signature:
		return catalog.KindDelegate
	case *types.Basic:
		if c.isEnum(tn, u) {
			return catalog.KindEnum
		}
	}
	return catalog.KindClass
}

// isEnum reports whether tn is a defined basic type with at least one
// package-level constant of that type, the usual Go enumeration idiom.
func (c *Catalog) isEnum(tn *types.TypeName, u *types.Basic) bool {
	if v, ok := c.enums[tn]; ok {
		return v
	}
	enum := false
	if u.Info()&(types.IsInteger|types.IsString) != 0 && tn.Pkg() != nil {
		scope := tn.Pkg().Scope()
		for _, name := range scope.Names() {
			if k, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(k.Type(), tn.Type()) {
				enum = true
				break
			}
		}
	}
	c.enums[tn] = enum
	return enum
}

// properties lists the non-embedded fields of a struct type. Embedded
// fields form the inheritance chain and are reachable through Type.Base.
func (c *Catalog) properties(t *catalog.Type) []catalog.Symbol {
	tn, ok := c.symbols[t].(*types.TypeName)
	if !ok {
		return nil
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	var out []catalog.Symbol
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			continue
		}
		p := &catalog.Property{
			Name:          f.Name(),
			Type:          c.typeRef(f.Type(), tn.Pkg()),
			DeclaringType: t,
			Setter:        catalog.NonPublicSetter,
		}
		if f.Exported() {
			p.Setter = catalog.PublicSetter
		}
		c.symbols[p] = f
		c.attributes[p] = parseTag(c.cfg.Marker, st.Tag(i))
		out = append(out, p)
	}
	return out
}

func (c *Catalog) typeRef(t types.Type, from *types.Package) *catalog.TypeRef {
	display := types.TypeString(t, qualifier(from))
	switch t := t.(type) {
	case *types.TypeParam:
		return &catalog.TypeRef{Name: t.Obj().Name(), Kind: catalog.KindTypeParameter, Display: display}
	case *types.Alias:
		return c.typeRef(types.Unalias(t), from)
	case *types.Named:
		origin := t.Origin().Obj()
		ref := &catalog.TypeRef{Name: fullName(origin), Display: display, Kind: c.kindOf(origin)}
		for i := 0; i < t.TypeArgs().Len(); i++ {
			ref.Args = append(ref.Args, c.typeRef(t.TypeArgs().At(i), from))
		}
		return ref
	case *types.Basic:
		return &catalog.TypeRef{Name: t.Name(), Display: display}
	case *types.Pointer:
		return composite(display, c.typeRef(t.Elem(), from))
	case *types.Slice:
		return composite(display, c.typeRef(t.Elem(), from))
	case *types.Array:
		return composite(display, c.typeRef(t.Elem(), from))
	case *types.Chan:
		return composite(display, c.typeRef(t.Elem(), from))
	case *types.Map:
		return composite(display, c.typeRef(t.Key(), from), c.typeRef(t.Elem(), from))
	case *types.Signature:
		ref := composite(display)
		ref.Kind = catalog.KindDelegate
		for _, tuple := range []*types.Tuple{t.Params(), t.Results()} {
			for i := 0; i < tuple.Len(); i++ {
				ref.Args = append(ref.Args, c.typeRef(tuple.At(i).Type(), from))
			}
		}
		return ref
	}
	return &catalog.TypeRef{Name: display, Display: display}
}

func composite(display string, args ...*catalog.TypeRef) *catalog.TypeRef {
	return &catalog.TypeRef{Name: display, Kind: catalog.KindComposite, Args: args, Display: display}
}

func fullName(tn *types.TypeName) string {
	if tn.Pkg() == nil {
		return tn.Name()
	}
	return tn.Pkg().Path() + "." + tn.Name()
}

// qualifier writes package names, including the package the reference is
// written from; generated code localizes them.
func qualifier(*types.Package) types.Qualifier {
	return func(p *types.Package) string { return p.Name() }
}

// parseTag turns `compgen:"parameter,captureUnmatched"` into an attribute
// named "compgen:parameter" with the remaining parts as arguments.
func parseTag(marker, tag string) []catalog.Attribute {
	value, ok := reflect.StructTag(tag).Lookup(marker)
	if !ok {
		return nil
	}
	parts := strings.Split(value, ",")
	attr := catalog.Attribute{Type: marker + ":" + strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			attr.Args = append(attr.Args, p)
		}
	}
	return []catalog.Attribute{attr}
}

// parseMarkers reads //compgen:name args... lines from a doc comment.
func parseMarkers(marker string, doc *ast.CommentGroup) []catalog.Attribute {
	if doc == nil {
		return nil
	}
	prefix := "//" + marker + ":"
	var attrs []catalog.Attribute
	for _, cmt := range doc.List {
		if !strings.HasPrefix(cmt.Text, prefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(cmt.Text, "//"))
		if len(fields) == 0 {
			continue
		}
		attr := catalog.Attribute{Type: fields[0]}
		for _, f := range fields[1:] {
			if k, v, ok := strings.Cut(f, "="); ok {
				if attr.Named == nil {
					attr.Named = make(map[string]string)
				}
				attr.Named[k] = v
				continue
			}
			attr.Args = append(attr.Args, f)
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func stripMarkers(marker, text string) string {
	var keep []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, marker+":") {
			continue
		}
		keep = append(keep, line)
	}
	return strings.Join(keep, "\n")
}
