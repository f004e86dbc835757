package descriptor

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrDuplicateAttribute = errors.New("duplicate bound attribute")
	ErrNoTagMatchingRule  = errors.New("descriptor has no tag matching rule")
)

// AttributeBuilder accumulates a bound attribute before it is frozen by
// Builder.Build.
type AttributeBuilder struct {
	name          string
	typeName      string
	propertyName  string
	documentation string
	metadata      map[string]string
	parameters    []BoundAttributeParameter
}

func NewAttribute(name, typeName string) *AttributeBuilder {
	return &AttributeBuilder{
		name:     name,
		typeName: typeName,
		metadata: make(map[string]string),
	}
}

func (b *AttributeBuilder) Name() string { return b.name }

func (b *AttributeBuilder) SetPropertyName(name string) *AttributeBuilder {
	b.propertyName = name
	return b
}

func (b *AttributeBuilder) SetDocumentation(doc string) *AttributeBuilder {
	b.documentation = doc
	return b
}

func (b *AttributeBuilder) SetMetadata(key, value string) *AttributeBuilder {
	b.metadata[key] = value
	return b
}

// SetFlag stores key with the value "true".
func (b *AttributeBuilder) SetFlag(key string) *AttributeBuilder {
	return b.SetMetadata(key, "true")
}

func (b *AttributeBuilder) Flag(key string) bool { return b.metadata[key] == "true" }

func (b *AttributeBuilder) AddParameter(p BoundAttributeParameter) *AttributeBuilder {
	b.parameters = append(b.parameters, p)
	return b
}

func (b *AttributeBuilder) build() *BoundAttribute {
	md := maps.Clone(b.metadata)
	return &BoundAttribute{
		name:          b.name,
		typeName:      b.typeName,
		propertyName:  b.propertyName,
		documentation: b.documentation,
		kind:          Classify(md),
		metadata:      md,
		parameters:    slices.Clone(b.parameters),
	}
}

// Builder accumulates a descriptor. Build returns a frozen value; the
// builder may keep being used afterwards without affecting it.
type Builder struct {
	kind          Kind
	name          string
	displayName   string
	assemblyName  string
	documentation string
	rules         []TagMatchingRule
	attributes    []*AttributeBuilder
	metadata      map[string]string
}

func NewBuilder(kind Kind, name, assemblyName string) *Builder {
	return &Builder{
		kind:         kind,
		name:         name,
		displayName:  name,
		assemblyName: assemblyName,
		metadata:     make(map[string]string),
	}
}

func (b *Builder) SetDisplayName(name string) *Builder {
	b.displayName = name
	return b
}

func (b *Builder) SetDocumentation(doc string) *Builder {
	b.documentation = doc
	return b
}

func (b *Builder) SetMetadata(key, value string) *Builder {
	b.metadata[key] = value
	return b
}

func (b *Builder) SetFlag(key string) *Builder { return b.SetMetadata(key, "true") }

func (b *Builder) AddTagMatchingRule(rule TagMatchingRule) *Builder {
	rule.Attributes = slices.Clone(rule.Attributes)
	b.rules = append(b.rules, rule)
	return b
}

func (b *Builder) AddAttribute(a *AttributeBuilder) *Builder {
	b.attributes = append(b.attributes, a)
	return b
}

// Attributes returns the attribute builders added so far.
func (b *Builder) Attributes() []*AttributeBuilder { return slices.Clone(b.attributes) }

func (b *Builder) HasAttribute(name string) bool {
	return slices.ContainsFunc(b.attributes, func(a *AttributeBuilder) bool { return a.name == name })
}

// Build validates and freezes the descriptor.
func (b *Builder) Build() (*Descriptor, error) {
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("%s %s: %w", b.kind, b.name, ErrNoTagMatchingRule)
	}
	seen := make(map[string]bool, len(b.attributes))
	attrs := make([]*BoundAttribute, 0, len(b.attributes))
	for _, a := range b.attributes {
		if seen[a.name] {
			return nil, fmt.Errorf("%s %s: %w %q", b.kind, b.name, ErrDuplicateAttribute, a.name)
		}
		seen[a.name] = true
		attrs = append(attrs, a.build())
	}
	rules := make([]TagMatchingRule, len(b.rules))
	for i, r := range b.rules {
		r.Attributes = slices.Clone(r.Attributes)
		rules[i] = r
	}
	return &Descriptor{
		kind:          b.kind,
		name:          b.name,
		displayName:   b.displayName,
		assemblyName:  b.assemblyName,
		documentation: b.documentation,
		rules:         rules,
		attributes:    attrs,
		metadata:      maps.Clone(b.metadata),
	}, nil
}

// MustBuild is like Build but panics on error. It is intended for
// descriptors whose shape is fixed at compile time.
func (b *Builder) MustBuild() *Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
