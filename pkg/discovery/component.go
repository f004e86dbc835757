package discovery

import (
	"fmt"
	"slices"

	"github.com/njreid/compgen/pkg/catalog"
	"github.com/njreid/compgen/pkg/descriptor"
)

func (d *Discoverer) isComponent(t *catalog.Type) bool {
	return t.Public && !t.Abstract && t.Kind == catalog.KindClass && t.Implements(d.wk.ComponentInterface)
}

// componentDescriptors builds the short-name descriptor, the
// fully-qualified one, then one child-content descriptor per child-content
// parameter for each of them.
func (d *Discoverer) componentDescriptors(t *catalog.Type) ([]*descriptor.Descriptor, error) {
	attrs := d.componentAttributes(t)

	short, err := d.componentDescriptor(t, t.Name, false, attrs)
	if err != nil {
		return nil, err
	}
	full, err := d.componentDescriptor(t, t.FullName(), true, attrs)
	if err != nil {
		return nil, err
	}
	out := []*descriptor.Descriptor{short, full}
	for _, parent := range []*descriptor.Descriptor{short, full} {
		for _, a := range parent.BoundAttributes() {
			if a.Kind() != descriptor.AttributeChildContent {
				continue
			}
			cc, err := d.childContentDescriptor(t, parent, a)
			if err != nil {
				return nil, err
			}
			out = append(out, cc)
		}
	}
	return out, nil
}

func (d *Discoverer) componentDescriptor(t *catalog.Type, tag string, fullyQualified bool, attrs []*descriptor.AttributeBuilder) (*descriptor.Descriptor, error) {
	b := descriptor.NewBuilder(descriptor.KindComponent, t.FullName(), programName(t)).
		SetDocumentation(t.Documentation).
		SetMetadata(descriptor.MetaTypeName, t.FullName()).
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: tag, CaseSensitive: true})
	if t.Package != "" {
		b.SetMetadata(descriptor.MetaPackageName, t.Package)
	}
	if fullyQualified {
		b.SetFlag(descriptor.MetaFullyQualifiedNameMatch)
	}
	if t.IsGenericDefinition() {
		b.SetFlag(descriptor.MetaGenericTyped)
	}
	for _, a := range attrs {
		b.AddAttribute(a)
	}
	return b.Build()
}

// componentAttributes classifies the parameters of t and appends the
// synthesized type-parameter and context attributes. A type-parameter
// attribute's type name is the parameter's constraint.
func (d *Discoverer) componentAttributes(t *catalog.Type) []*descriptor.AttributeBuilder {
	params := d.parameters(t)

	var attrs []*descriptor.AttributeBuilder
	names := make(map[string]bool, len(params))
	parameterized := false
	for _, p := range params {
		a := d.parameterAttribute(p)
		parameterized = parameterized || a.Flag(descriptor.MetaParameterizedChildContent)
		names[p.Name] = true
		attrs = append(attrs, a)
	}

	if t.IsGenericDefinition() {
		for _, tp := range typeParametersOf(t, params) {
			if names[tp] {
				continue
			}
			names[tp] = true
			constraint := "any"
			if i := slices.Index(t.TypeParameters, tp); i >= 0 {
				constraint = t.Constraint(i)
			}
			attrs = append(attrs, descriptor.NewAttribute(tp, constraint).
				SetPropertyName(tp).
				SetDocumentation(fmt.Sprintf("Specifies the type of the type parameter %s for the %s component.", tp, t.Name)).
				SetFlag(descriptor.MetaTypeParameter))
		}
	}

	if parameterized && !names[d.wk.ContextAttribute] {
		attrs = append(attrs, d.contextAttribute("Specifies the parameter name for all child content expressions."))
	}
	return attrs
}

func (d *Discoverer) contextAttribute(doc string) *descriptor.AttributeBuilder {
	return descriptor.NewAttribute(d.wk.ContextAttribute, "string").
		SetPropertyName(d.wk.ContextAttribute).
		SetDocumentation(doc).
		SetFlag(descriptor.MetaChildContentParameterName)
}

// parameters walks the inheritance chain of t up to the component base
// type. The first property of a given name wins, so derived properties
// shadow base ones even when the derived one is not a parameter.
func (d *Discoverer) parameters(t *catalog.Type) []*catalog.Property {
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	var out []*catalog.Property
	for cur := t; cur != nil; cur = d.baseOf(cur) {
		if cur.FullName() == d.wk.ComponentBase || visited[cur.FullName()] {
			break
		}
		visited[cur.FullName()] = true
		for _, m := range d.cat.EnumerateMembers(cur) {
			p, ok := m.(*catalog.Property)
			if !ok || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			if d.isParameter(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (d *Discoverer) baseOf(t *catalog.Type) *catalog.Type {
	if t.Base == nil || t.Base.Name == d.wk.ComponentBase {
		return nil
	}
	base, ok := d.cat.ResolveByName(t.Base.Name)
	if !ok {
		return nil
	}
	return base
}

func (d *Discoverer) isParameter(p *catalog.Property) bool {
	if p.Static || p.Indexer || p.Setter == catalog.NoSetter || p.Type == nil {
		return false
	}
	return slices.ContainsFunc(d.cat.AttributesOf(p), func(a catalog.Attribute) bool {
		return a.Type == d.wk.ParameterAttribute
	})
}

// parameterAttribute classifies p. The first matching shape wins: enum,
// child content, event callback, delegate.
func (d *Discoverer) parameterAttribute(p *catalog.Property) *descriptor.AttributeBuilder {
	ref := p.Type
	a := descriptor.NewAttribute(p.Name, ref.String()).
		SetPropertyName(p.Name).
		SetDocumentation(p.Documentation)

	switch {
	case ref.Kind == catalog.KindEnum:
		a.SetFlag(descriptor.MetaEnum)
	case ref.Name == d.wk.RenderFragment && len(ref.Args) == 0:
		a.SetFlag(descriptor.MetaChildContent)
	case ref.Name == d.wk.RenderFragmentOf && len(ref.Args) == 1:
		a.SetFlag(descriptor.MetaChildContent)
		a.SetFlag(descriptor.MetaParameterizedChildContent)
	case ref.Name == d.wk.EventCallback || (ref.Name == d.wk.EventCallbackOf && len(ref.Args) == 1):
		a.SetFlag(descriptor.MetaEventCallback)
	case ref.Kind == catalog.KindDelegate:
		a.SetFlag(descriptor.MetaDelegate)
	}
	if hasTypeParameter(ref) {
		a.SetFlag(descriptor.MetaGenericTyped)
	}
	return a
}

// typeParametersOf returns the type parameters referenced by the parameter
// types, declared ones first in declaration order.
func typeParametersOf(t *catalog.Type, params []*catalog.Property) []string {
	var found []string
	for _, p := range params {
		collectTypeParameters(p.Type, &found)
	}
	out := make([]string, 0, len(found))
	for _, tp := range t.TypeParameters {
		if slices.Contains(found, tp) {
			out = append(out, tp)
		}
	}
	for _, tp := range found {
		if !slices.Contains(out, tp) {
			out = append(out, tp)
		}
	}
	return out
}

func collectTypeParameters(ref *catalog.TypeRef, found *[]string) {
	if ref == nil {
		return
	}
	if ref.Kind == catalog.KindTypeParameter {
		if !slices.Contains(*found, ref.Name) {
			*found = append(*found, ref.Name)
		}
		return
	}
	for _, arg := range ref.Args {
		collectTypeParameters(arg, found)
	}
	collectTypeParameters(ref.Containing, found)
}

func hasTypeParameter(ref *catalog.TypeRef) bool {
	var found []string
	collectTypeParameters(ref, &found)
	return len(found) > 0
}

// childContentDescriptor matches the child-content attribute a as an
// element directly below parent's tag.
func (d *Discoverer) childContentDescriptor(t *catalog.Type, parent *descriptor.Descriptor, a *descriptor.BoundAttribute) (*descriptor.Descriptor, error) {
	parentTag := parent.TagMatchingRules()[0].TagName
	b := descriptor.NewBuilder(descriptor.KindChildContent, t.FullName()+"."+a.Name(), programName(t)).
		SetDisplayName(t.FullName()+"."+a.Name()).
		SetDocumentation(a.Documentation()).
		SetMetadata(descriptor.MetaSpecialKind, descriptor.SpecialKindChildContent).
		SetMetadata(descriptor.MetaTypeName, t.FullName()).
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: a.Name(), ParentTag: parentTag, CaseSensitive: true})
	if parent.IsFullyQualifiedNameMatch() {
		b.SetFlag(descriptor.MetaFullyQualifiedNameMatch)
	}
	if a.IsParameterizedChildContent() {
		b.AddAttribute(d.contextAttribute(fmt.Sprintf("Specifies the parameter name for the %s child content expression.", a.Name())))
	}
	return b.Build()
}

func programName(t *catalog.Type) string {
	if t.Program == nil {
		return ""
	}
	return t.Program.Name
}
