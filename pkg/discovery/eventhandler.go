package discovery

import (
	"strings"

	"github.com/njreid/compgen/pkg/catalog"
	"github.com/njreid/compgen/pkg/descriptor"
)

// eventHandlerDescriptors returns one descriptor per event-handler
// attribute on t. Attributes declaring the same event are not merged.
func (d *Discoverer) eventHandlerDescriptors(t *catalog.Type) ([]*descriptor.Descriptor, error) {
	if !t.Public || t.Name != d.wk.EventHandlersTypeName {
		return nil, nil
	}
	var out []*descriptor.Descriptor
	for _, a := range d.cat.AttributesOf(t) {
		if a.Type != d.wk.EventHandlerAttribute {
			continue
		}
		event, argsType := a.Arg(0), a.Arg(1)
		if event == "" || argsType == "" {
			d.log.Warn("ignoring incomplete event handler declaration", "type", t.FullName(), "args", a.Args)
			continue
		}
		ds, err := d.eventHandlerDescriptor(t, event, argsType,
			flagArg(a, 2, "stopPropagation"), flagArg(a, 3, "preventDefault"))
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func (d *Discoverer) eventHandlerDescriptor(t *catalog.Type, event, argsType string, stopPropagation, preventDefault bool) (*descriptor.Descriptor, error) {
	attrName := "@" + event
	args := d.sourceName(argsType)
	callback := d.sourceName(d.wk.EventCallbackOf) + "[" + args + "]"

	a := descriptor.NewAttribute(attrName, callback).
		SetPropertyName(event).
		SetDocumentation("Sets the '" + attrName + "' attribute to the provided string or delegate value. " +
			"A delegate value should be of type '" + args + "'.").
		SetFlag(descriptor.MetaDirectiveAttribute).
		SetFlag(descriptor.MetaEventCallback).
		SetFlag(descriptor.MetaWeaklyTyped)

	b := descriptor.NewBuilder(descriptor.KindEventHandler, event, programName(t)).
		SetDisplayName(t.FullName()).
		SetMetadata(descriptor.MetaSpecialKind, descriptor.SpecialKindEventHandler).
		SetMetadata(descriptor.MetaEventArgsType, argsType).
		SetMetadata(descriptor.MetaTypeName, t.FullName()).
		AddTagMatchingRule(descriptor.TagMatchingRule{
			TagName:    "*",
			Attributes: []descriptor.RequiredAttribute{{Name: attrName, IsDirective: true}},
		})

	modifiers := []struct {
		enabled bool
		name    string
		meta    string
		doc     string
	}{
		{stopPropagation, "stopPropagation", descriptor.MetaStopPropagation, "Specifies whether to prevent further propagation of the '" + attrName + "' event."},
		{preventDefault, "preventDefault", descriptor.MetaPreventDefault, "Specifies whether to cancel (if cancelable) the default action for the '" + attrName + "' event."},
	}
	for _, m := range modifiers {
		if !m.enabled {
			continue
		}
		required := attrName + ":" + m.name
		b.SetFlag(m.meta)
		b.AddTagMatchingRule(descriptor.TagMatchingRule{
			TagName:    "*",
			Attributes: []descriptor.RequiredAttribute{{Name: required, IsDirective: true}},
		})
		a.AddParameter(descriptor.BoundAttributeParameter{Name: m.name, TypeName: "bool", Documentation: m.doc})
	}
	b.AddAttribute(a)
	return b.Build()
}

// refDescriptor matches @ref on any element or component.
func refDescriptor(wk WellKnown) *descriptor.Descriptor {
	pkg := wk.ElementReference
	if i := strings.LastIndex(pkg, "."); i > 0 {
		pkg = pkg[:i]
	}
	return descriptor.NewBuilder(descriptor.KindRef, "Ref", pkg).
		SetDocumentation("Populates the specified field or variable with a reference to the element or component.").
		SetMetadata(descriptor.MetaSpecialKind, descriptor.SpecialKindRef).
		AddTagMatchingRule(descriptor.TagMatchingRule{
			TagName:    "*",
			Attributes: []descriptor.RequiredAttribute{{Name: "@ref", IsDirective: true}},
		}).
		AddAttribute(descriptor.NewAttribute("@ref", "any").
			SetPropertyName("Ref").
			SetDocumentation("Populates the specified field or variable with a reference to the element or component.").
			SetFlag(descriptor.MetaDirectiveAttribute)).
		MustBuild()
}

// flagArg reads a boolean modifier given either positionally or by name.
func flagArg(a catalog.Attribute, pos int, name string) bool {
	if v, ok := a.Named[name]; ok {
		return v == "true"
	}
	return a.Arg(pos) == "true"
}

// sourceName writes a fully-qualified type name as source refers to it,
// using the package name the catalog knows for the type.
func (d *Discoverer) sourceName(fullName string) string {
	var pkg string
	if t, ok := d.cat.ResolveByName(fullName); ok {
		pkg = t.Package
	}
	return descriptor.SourceName(fullName, pkg)
}
