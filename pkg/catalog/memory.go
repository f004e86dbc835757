package catalog

// Memory is a Catalog assembled in code.
type Memory struct {
	programs   []*Program
	members    map[Symbol][]Symbol
	attributes map[Symbol][]Attribute
	types      map[string]*Type
	attrTypes  map[string]bool
}

var (
	_ Catalog           = (*Memory)(nil)
	_ AttributeResolver = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		members:    make(map[Symbol][]Symbol),
		attributes: make(map[Symbol][]Attribute),
		types:      make(map[string]*Type),
		attrTypes:  make(map[string]bool),
	}
}

// DeclareAttribute makes an attribute type resolvable.
func (m *Memory) DeclareAttribute(fullName string) {
	m.attrTypes[fullName] = true
}

func (m *Memory) ResolveAttribute(fullName string) bool {
	if m.attrTypes[fullName] {
		return true
	}
	_, ok := m.types[fullName]
	return ok
}

// AddProgram appends a program. The first program added is the one being
// compiled.
func (m *Memory) AddProgram(name string) *Program {
	p := &Program{Name: name}
	m.programs = append(m.programs, p)
	return p
}

// AddNamespace adds a namespace below a program or another namespace.
func (m *Memory) AddNamespace(parent Symbol, name string) *Namespace {
	ns := &Namespace{Name: name}
	switch p := parent.(type) {
	case *Program:
		ns.Program = p
		ns.Path = name
	case *Namespace:
		ns.Program = p.Program
		ns.Path = qualify(p.Path, name)
	default:
		panic("catalog: namespace parent must be a program or namespace")
	}
	m.members[parent] = append(m.members[parent], ns)
	return ns
}

// AddType declares t inside ns. Namespace and Program are filled in.
func (m *Memory) AddType(ns *Namespace, t *Type, attrs ...Attribute) *Type {
	t.Namespace = ns.Path
	t.Program = ns.Program
	m.members[ns] = append(m.members[ns], t)
	m.types[t.FullName()] = t
	if len(attrs) > 0 {
		m.attributes[t] = append(m.attributes[t], attrs...)
	}
	return t
}

// AddProperty declares p on t.
func (m *Memory) AddProperty(t *Type, p *Property, attrs ...Attribute) *Property {
	p.DeclaringType = t
	m.members[t] = append(m.members[t], p)
	if len(attrs) > 0 {
		m.attributes[p] = append(m.attributes[p], attrs...)
	}
	return p
}

func (m *Memory) Programs() []*Program { return append([]*Program(nil), m.programs...) }

func (m *Memory) ResolveByName(fullName string) (*Type, bool) {
	t, ok := m.types[fullName]
	return t, ok
}

func (m *Memory) EnumerateMembers(container Symbol) []Symbol {
	return append([]Symbol(nil), m.members[container]...)
}

func (m *Memory) AttributesOf(sym Symbol) []Attribute {
	return append([]Attribute(nil), m.attributes[sym]...)
}
