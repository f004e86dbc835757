package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njreid/compgen/pkg/ir"
)

func TestTrimWhitespace(t *testing.T) {
	class := htmlAttr("class", literalValue("x"))
	inner := text(" keep ")
	el := element("p", text("\n  "), class, text("\t"), inner, expr("c.x"), text("\n"))
	tmpl := &ir.Template{Children: []ir.Node{text(" "), expr("a"), text(" ")}}
	doc := document(text("\n"), el, &ir.CodeStatement{Children: []ir.Node{code("f("), tmpl, code(")")}}, text("\n\n"))

	TrimWhitespace(doc)

	require.Len(t, doc.Children, 2)
	assert.Equal(t, []ir.Node{class, inner, el.Children[2]}, el.Children)
	assert.IsType(t, &ir.CodeExpression{}, el.Children[2])
	require.Len(t, tmpl.Children, 1)
	assert.IsType(t, &ir.CodeExpression{}, tmpl.Children[0])

	TrimWhitespace(nil)
}

func TestTrimWhitespace_KeepsInnerWhitespace(t *testing.T) {
	gap := text(" ")
	el := element("p", expr("a"), gap, expr("b"))
	TrimWhitespace(document(el))
	assert.Len(t, el.Children, 3)
	assert.Same(t, gap, el.Children[1])
}

func TestCollapseMarkup(t *testing.T) {
	static := element("p", htmlAttr("class", literalValue("a&amp;b")), text("x &amp; y "), element("br"), element("b", text("<bold>")))
	dynamic := element("div", element("span", text("s")), expr("c.Name"))
	script := element("script", text("if (a < b) {}"))
	doc := document(static, dynamic, script)

	require.NoError(t, CollapseMarkup(doc))

	block, ok := doc.Children[0].(*ir.MarkupBlock)
	require.True(t, ok)
	assert.Equal(t, `<p class="a&amp;b">x &amp; y <br/><b>&lt;bold&gt;</b></p>`, block.Content)

	assert.Same(t, dynamic, doc.Children[1])
	span, ok := dynamic.Children[0].(*ir.MarkupBlock)
	require.True(t, ok)
	assert.Equal(t, "<span>s</span>", span.Content)
	assert.Same(t, script, doc.Children[2])

	got := generate(t, Runtime, doc.Children...)
	assert.Contains(t, got, "\t__builder.AddMarkupContent(0, \"<p class=\\\"a&amp;b\\\">x &amp; y <br/><b>&lt;bold&gt;</b></p>\")\n")

	assert.ErrorIs(t, CollapseMarkup(nil), ErrNilInput)
}

func TestCollapseMarkup_SkipsDirectives(t *testing.T) {
	click := clickDescriptor()
	withKey := element("li", &ir.SetKey{Value: code("k")}, text("x"))
	withHandler := element("button", &ir.ComponentAttribute{AttributeName: "@onclick", BoundAttribute: click.Attribute("@onclick"), Children: []ir.Node{expr("f")}})
	withCode := element("a", htmlAttr("href", codeValue("c.url")))
	doc := document(withKey, withHandler, withCode)

	require.NoError(t, CollapseMarkup(doc))
	assert.Equal(t, []ir.Node{withKey, withHandler, withCode}, doc.Children)
}

func TestGenerate_RunsPassesWhenAsked(t *testing.T) {
	build := func() *ir.Document {
		return document(text("\n  "), element("p", text("a &amp; b"), element("br")), expr("c.Name"), text("\n"))
	}

	plain, err := Generate(build(), Options{})
	require.NoError(t, err)
	assert.Contains(t, plain.Code, "\t__builder.OpenElement(1, \"p\")\n")
	assert.Contains(t, plain.Code, "\t__builder.AddContent(0, \"\\n  \")\n")

	lowered, err := Generate(build(), Options{TrimWhitespace: true, CollapseMarkup: true})
	require.NoError(t, err)
	assert.Contains(t, lowered.Code, lines(
		"\t__builder.AddMarkupContent(0, \"<p>a &amp; b<br/></p>\")",
		"\t__builder.AddContent(1, c.Name)",
	))
	assert.NotContains(t, lowered.Code, "OpenElement")
	assert.NotContains(t, lowered.Code, `"\n"`)
}
