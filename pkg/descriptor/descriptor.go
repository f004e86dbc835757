// Package descriptor holds the immutable records produced by discovery and
// consumed by the binder and the code generator.
package descriptor

import (
	"fmt"
	"maps"
	"slices"
)

// Kind is the category of a descriptor.
type Kind int

const (
	KindComponent Kind = iota
	KindEventHandler
	KindRef
	KindChildContent
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "Component"
	case KindEventHandler:
		return "EventHandler"
	case KindRef:
		return "Ref"
	case KindChildContent:
		return "ChildContent"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Metadata keys. Flags are stored with the value "true".
const (
	MetaTypeName                  = "common.TypeName"
	MetaPackageName               = "common.PackageName"
	MetaDirectiveAttribute        = "common.DirectiveAttribute"
	MetaSpecialKind               = "components.SpecialKind"
	MetaFullyQualifiedNameMatch   = "components.FullyQualifiedNameMatch"
	MetaGenericTyped              = "components.GenericTyped"
	MetaEnum                      = "components.IsEnum"
	MetaChildContent              = "components.ChildContent"
	MetaParameterizedChildContent = "components.ParameterizedChildContent"
	MetaEventCallback             = "components.EventCallback"
	MetaDelegate                  = "components.DelegateSignature"
	MetaTypeParameter             = "components.TypeParameter"
	MetaChildContentParameterName = "components.ChildContentParameterName"
	MetaWeaklyTyped               = "components.IsWeaklyTyped"
	MetaEventArgsType             = "components.EventHandler.EventArgs"
	MetaStopPropagation           = "components.EventHandler.StopPropagation"
	MetaPreventDefault            = "components.EventHandler.PreventDefault"
)

// Values of MetaSpecialKind.
const (
	SpecialKindEventHandler = "components.EventHandler"
	SpecialKindRef          = "components.Ref"
	SpecialKindChildContent = "components.ChildContent"
)

// RequiredAttribute is an attribute that must be present on a tag for a
// rule to match.
type RequiredAttribute struct {
	Name          string
	IsDirective   bool
	CaseSensitive bool
}

// TagMatchingRule tells the binder which template tags a descriptor applies to.
type TagMatchingRule struct {
	TagName       string
	ParentTag     string
	CaseSensitive bool
	Attributes    []RequiredAttribute
}

// BoundAttributeParameter is a sub-attribute such as the ":event" part of a
// directive attribute.
type BoundAttributeParameter struct {
	Name          string
	TypeName      string
	Documentation string
}

// BoundAttribute is one attribute slot on a descriptor.
type BoundAttribute struct {
	name          string
	typeName      string
	propertyName  string
	documentation string
	kind          AttributeKind
	metadata      map[string]string
	parameters    []BoundAttributeParameter
}

func (a *BoundAttribute) Name() string          { return a.name }
func (a *BoundAttribute) TypeName() string      { return a.typeName }
func (a *BoundAttribute) PropertyName() string  { return a.propertyName }
func (a *BoundAttribute) Documentation() string { return a.documentation }
func (a *BoundAttribute) Kind() AttributeKind   { return a.kind }

// Metadata returns a copy of the attribute metadata.
func (a *BoundAttribute) Metadata() map[string]string { return maps.Clone(a.metadata) }

// Meta returns a single metadata value.
func (a *BoundAttribute) Meta(key string) (string, bool) {
	v, ok := a.metadata[key]
	return v, ok
}

// Flag reports whether the metadata key is set to "true".
func (a *BoundAttribute) Flag(key string) bool { return a.metadata[key] == "true" }

func (a *BoundAttribute) Parameters() []BoundAttributeParameter { return slices.Clone(a.parameters) }

// IsWeaklyTyped reports whether emitted values skip the type-check wrapper.
func (a *BoundAttribute) IsWeaklyTyped() bool { return IsWeaklyTyped(a.metadata) }

// IsParameterizedChildContent reports whether the attribute is child content
// that receives a context value.
func (a *BoundAttribute) IsParameterizedChildContent() bool {
	return a.kind == AttributeChildContent && a.Flag(MetaParameterizedChildContent)
}

// IsChildContentParameterName reports whether the attribute names the context
// parameter of parameterized child content.
func (a *BoundAttribute) IsChildContentParameterName() bool {
	return a.Flag(MetaChildContentParameterName)
}

// Descriptor is an immutable record describing how a tag or attribute binds.
type Descriptor struct {
	kind          Kind
	name          string
	displayName   string
	assemblyName  string
	documentation string
	rules         []TagMatchingRule
	attributes    []*BoundAttribute
	metadata      map[string]string
}

func (d *Descriptor) Kind() Kind            { return d.kind }
func (d *Descriptor) Name() string          { return d.name }
func (d *Descriptor) DisplayName() string   { return d.displayName }
func (d *Descriptor) AssemblyName() string  { return d.assemblyName }
func (d *Descriptor) Documentation() string { return d.documentation }

// Metadata returns a copy of the descriptor metadata.
func (d *Descriptor) Metadata() map[string]string { return maps.Clone(d.metadata) }

// TagMatchingRules returns a copy of the rules.
func (d *Descriptor) TagMatchingRules() []TagMatchingRule {
	rules := make([]TagMatchingRule, len(d.rules))
	for i, r := range d.rules {
		r.Attributes = slices.Clone(r.Attributes)
		rules[i] = r
	}
	return rules
}

// BoundAttributes returns the attributes in declaration order. The
// attributes themselves are immutable and shared.
func (d *Descriptor) BoundAttributes() []*BoundAttribute { return slices.Clone(d.attributes) }

// Attribute looks up a bound attribute by name.
func (d *Descriptor) Attribute(name string) *BoundAttribute {
	for _, a := range d.attributes {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (d *Descriptor) Meta(key string) (string, bool) {
	v, ok := d.metadata[key]
	return v, ok
}

func (d *Descriptor) Flag(key string) bool { return d.metadata[key] == "true" }

// TypeName is the fully-qualified name of the type the descriptor was built from.
func (d *Descriptor) TypeName() string { return d.metadata[MetaTypeName] }

// PackageName is the Go package name declaring the type, or "" when
// discovery did not know it.
func (d *Descriptor) PackageName() string { return d.metadata[MetaPackageName] }

func (d *Descriptor) IsGenericTyped() bool            { return d.Flag(MetaGenericTyped) }
func (d *Descriptor) IsFullyQualifiedNameMatch() bool { return d.Flag(MetaFullyQualifiedNameMatch) }

// IsChildContent reports whether d matches a child-content tag.
func (d *Descriptor) IsChildContent() bool {
	return d.metadata[MetaSpecialKind] == SpecialKindChildContent
}

// TypeParameters returns the attributes synthesized for unresolved type
// parameters, in declaration order.
func (d *Descriptor) TypeParameters() []*BoundAttribute {
	var out []*BoundAttribute
	for _, a := range d.attributes {
		if a.kind == AttributeGenericTypeArgument {
			out = append(out, a)
		}
	}
	return out
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s %s (%s)", d.kind, d.displayName, d.assemblyName)
}
