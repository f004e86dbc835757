// Package catalog describes the narrow view of a compiled program's type
// graph that discovery needs. Implementations adapt a host compiler; Memory
// is an in-process implementation used for tests and fixtures.
package catalog

import "strings"

// Catalog resolves and enumerates symbols of a compiled program and the
// programs it references.
type Catalog interface {
	// Programs returns the compiled program followed by its references, in
	// a stable order.
	Programs() []*Program
	// ResolveByName looks a type up by fully-qualified name.
	ResolveByName(fullName string) (*Type, bool)
	// EnumerateMembers lists the members of a container in declaration
	// order: namespaces of a program, namespaces and types of a namespace,
	// properties of a type.
	EnumerateMembers(container Symbol) []Symbol
	// AttributesOf returns the attributes attached to a type or property.
	AttributesOf(sym Symbol) []Attribute
}

// AttributeResolver is implemented by catalogs that can tell whether an
// attribute type exists at all. Catalogs without it are assumed to know
// every attribute.
type AttributeResolver interface {
	ResolveAttribute(fullName string) bool
}

// Symbol is a program, namespace, type or property.
type Symbol interface {
	FullName() string
	symbol()
}

// Program is a unit of compilation, such as an assembly or a Go package.
type Program struct {
	Name string
}

// Namespace groups types inside a program.
type Namespace struct {
	Name    string
	Path    string
	Program *Program
}

// TypeKind classifies types and type references.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindDelegate
	KindTypeParameter
	// KindComposite is an unnamed type built from other types (slice,
	// pointer, map, ...). Its components are the reference's Args.
	KindComposite
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindEnum:
		return "Enum"
	case KindDelegate:
		return "Delegate"
	case KindTypeParameter:
		return "TypeParameter"
	case KindComposite:
		return "Composite"
	}
	return "Unknown"
}

// Type is a declared type.
type Type struct {
	Name      string
	Namespace string
	// Package is the Go package name source code qualifies the type with;
	// empty when unknown.
	Package  string
	Program  *Program
	Kind     TypeKind
	Public   bool
	Abstract bool
	// TypeParameters lists the names of the type's own type parameters.
	TypeParameters []string
	// TypeParameterConstraints holds the constraint of each type parameter
	// as source text. It may be shorter than TypeParameters; missing
	// constraints are "any".
	TypeParameterConstraints []string
	// Base is the type this one derives from, or nil.
	Base *TypeRef
	// Interfaces holds the fully-qualified names of implemented interfaces.
	Interfaces    []string
	Documentation string
}

func (t *Type) FullName() string { return qualify(t.Namespace, t.Name) }

// Implements reports whether t implements the named interface.
func (t *Type) Implements(iface string) bool {
	for _, i := range t.Interfaces {
		if i == iface {
			return true
		}
	}
	return false
}

// Constraint returns the constraint of the i-th type parameter.
func (t *Type) Constraint(i int) string {
	if i < len(t.TypeParameterConstraints) && t.TypeParameterConstraints[i] != "" {
		return t.TypeParameterConstraints[i]
	}
	return "any"
}

// IsGenericDefinition reports whether t declares type parameters.
func (t *Type) IsGenericDefinition() bool { return len(t.TypeParameters) > 0 }

// Accessibility of a property setter.
type Accessibility int

const (
	NoSetter Accessibility = iota
	PublicSetter
	NonPublicSetter
)

// Property is a settable member of a type.
type Property struct {
	Name          string
	Type          *TypeRef
	DeclaringType *Type
	Static        bool
	Indexer       bool
	Setter        Accessibility
	Documentation string
}

func (p *Property) FullName() string {
	if p.DeclaringType == nil {
		return p.Name
	}
	return p.DeclaringType.FullName() + "." + p.Name
}

// TypeRef is a use of a type, such as a property type.
type TypeRef struct {
	// Name is the fully-qualified name of the referenced type or generic
	// definition, or the name of a type parameter.
	Name string
	Kind TypeKind
	// Args holds type arguments, or the components of a composite type.
	Args []*TypeRef
	// Containing is the enclosing type of a nested type.
	Containing *TypeRef
	// Display is the reference written as source code, e.g.
	// "render.RenderFragmentOf[app.Row]".
	Display string
}

func (r *TypeRef) String() string {
	if r.Display != "" {
		return r.Display
	}
	if len(r.Args) == 0 {
		return r.Name
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	return r.Name + "[" + strings.Join(args, ", ") + "]"
}

// IsGeneric reports whether r instantiates a generic definition.
func (r *TypeRef) IsGeneric() bool { return r.Kind != KindComposite && len(r.Args) > 0 }

// Attribute is a piece of declarative metadata attached to a symbol.
type Attribute struct {
	// Type is the fully-qualified attribute name.
	Type  string
	Args  []string
	Named map[string]string
}

// Arg returns the i-th positional argument or "".
func (a Attribute) Arg(i int) string {
	if i < len(a.Args) {
		return a.Args[i]
	}
	return ""
}

func (p *Program) FullName() string   { return p.Name }
func (n *Namespace) FullName() string { return n.Path }

func (*Program) symbol()   {}
func (*Namespace) symbol() {}
func (*Type) symbol()      {}
func (*Property) symbol()  {}

func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}
