package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njreid/compgen/pkg/descriptor"
	"github.com/njreid/compgen/pkg/ir"
)

var spanOffset int

// code returns a code token with a distinct span.
func code(s string) *ir.Token {
	spanOffset += 10
	return &ir.Token{Kind: ir.TokenCode, Content: s, Span: &ir.Span{FilePath: "Page.tmpl", AbsoluteIndex: spanOffset, Length: len(s)}}
}

func markup(s string) *ir.Token { return &ir.Token{Kind: ir.TokenMarkup, Content: s} }

func text(s string) *ir.HtmlContent { return &ir.HtmlContent{Children: []ir.Node{markup(s)}} }

func expr(s string) *ir.CodeExpression { return &ir.CodeExpression{Children: []ir.Node{code(s)}} }

func element(tag string, children ...ir.Node) *ir.MarkupElement {
	return &ir.MarkupElement{TagName: tag, Children: children}
}

func htmlAttr(name string, values ...ir.Node) *ir.HtmlAttribute {
	return &ir.HtmlAttribute{AttributeName: name, Children: values}
}

func literalValue(s string) *ir.HtmlAttributeValue {
	return &ir.HtmlAttributeValue{Children: []ir.Node{markup(s)}}
}

func codeValue(s string) *ir.CodeExpressionAttributeValue {
	return &ir.CodeExpressionAttributeValue{Children: []ir.Node{code(s)}}
}

func counterDescriptor() *descriptor.Descriptor {
	return descriptor.NewBuilder(descriptor.KindComponent, "example.com/ui.Counter", "example.com/ui").
		SetMetadata(descriptor.MetaTypeName, "example.com/ui.Counter").
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "Counter", CaseSensitive: true}).
		AddAttribute(descriptor.NewAttribute("Title", "string")).
		AddAttribute(descriptor.NewAttribute("Active", "bool")).
		AddAttribute(descriptor.NewAttribute("Mode", "ui.Mode").SetFlag(descriptor.MetaEnum)).
		AddAttribute(descriptor.NewAttribute("OnClick", "render.EventCallbackOf[render.MouseEventArgs]").SetFlag(descriptor.MetaEventCallback)).
		AddAttribute(descriptor.NewAttribute("Format", "func(int) string").SetFlag(descriptor.MetaDelegate)).
		AddAttribute(descriptor.NewAttribute("Extra", "any").SetFlag(descriptor.MetaWeaklyTyped)).
		AddAttribute(descriptor.NewAttribute("ChildContent", "render.RenderFragment").SetFlag(descriptor.MetaChildContent)).
		MustBuild()
}

// badgeDescriptor has no child-content parameter.
func badgeDescriptor() *descriptor.Descriptor {
	return descriptor.NewBuilder(descriptor.KindComponent, "example.com/ui.Badge", "example.com/ui").
		SetMetadata(descriptor.MetaTypeName, "example.com/ui.Badge").
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "Badge", CaseSensitive: true}).
		AddAttribute(descriptor.NewAttribute("Label", "string")).
		MustBuild()
}

func gridDescriptor() *descriptor.Descriptor {
	return descriptor.NewBuilder(descriptor.KindComponent, "example.com/ui.Grid", "example.com/ui").
		SetMetadata(descriptor.MetaTypeName, "example.com/ui.Grid").
		SetFlag(descriptor.MetaGenericTyped).
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "Grid", CaseSensitive: true}).
		AddAttribute(descriptor.NewAttribute("Items", "[]TItem").SetFlag(descriptor.MetaGenericTyped)).
		AddAttribute(descriptor.NewAttribute("OnSelect", "render.EventCallbackOf[TItem]").SetFlag(descriptor.MetaEventCallback).SetFlag(descriptor.MetaGenericTyped)).
		AddAttribute(descriptor.NewAttribute("Header", "render.RenderFragment").SetFlag(descriptor.MetaChildContent)).
		AddAttribute(descriptor.NewAttribute("Row", "render.RenderFragmentOf[TItem]").SetFlag(descriptor.MetaChildContent).SetFlag(descriptor.MetaParameterizedChildContent).SetFlag(descriptor.MetaGenericTyped)).
		AddAttribute(descriptor.NewAttribute("TItem", "any").SetFlag(descriptor.MetaTypeParameter)).
		AddAttribute(descriptor.NewAttribute("Context", "string").SetFlag(descriptor.MetaChildContentParameterName)).
		MustBuild()
}

func clickDescriptor() *descriptor.Descriptor {
	return descriptor.NewBuilder(descriptor.KindEventHandler, "onclick", "example.com/render").
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "*", Attributes: []descriptor.RequiredAttribute{{Name: "@onclick", IsDirective: true}}}).
		AddAttribute(descriptor.NewAttribute("@onclick", "render.EventCallbackOf[render.MouseEventArgs]").
			SetFlag(descriptor.MetaEventCallback).
			SetFlag(descriptor.MetaWeaklyTyped).
			SetFlag(descriptor.MetaDirectiveAttribute)).
		MustBuild()
}

func component(d *descriptor.Descriptor, children ...ir.Node) *ir.Component {
	return &ir.Component{TagName: d.TagMatchingRules()[0].TagName, Descriptor: d, Children: children}
}

// attr binds a component attribute to the attribute of the same name on d.
func attr(d *descriptor.Descriptor, name string, value ...ir.Node) *ir.ComponentAttribute {
	a := d.Attribute(name)
	return &ir.ComponentAttribute{AttributeName: name, PropertyName: name, TypeName: a.TypeName(), BoundAttribute: a, Children: value}
}

func minimized(d *descriptor.Descriptor, name string) *ir.ComponentAttribute {
	a := attr(d, name)
	a.Minimized = true
	return a
}

func childContent(d *descriptor.Descriptor, name, param string, body ...ir.Node) *ir.ComponentChildContent {
	return &ir.ComponentChildContent{AttributeName: name, ParameterName: param, BoundAttribute: d.Attribute(name), Children: body}
}

func typeArg(d *descriptor.Descriptor, name, value string) *ir.ComponentTypeArgument {
	return &ir.ComponentTypeArgument{TypeParameterName: name, BoundAttribute: d.Attribute(name), Value: code(value)}
}

func document(children ...ir.Node) *ir.Document {
	return &ir.Document{Package: "app", TypeName: "Page", Children: children}
}

func generate(t *testing.T, mode Mode, children ...ir.Node) string {
	t.Helper()
	res, err := Generate(document(children...), Options{Mode: mode})
	require.NoError(t, err)
	return res.Code
}
