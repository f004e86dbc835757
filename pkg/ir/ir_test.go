package ir

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/njreid/compgen/pkg/descriptor"
)

func code(s string) *Token   { return &Token{Kind: TokenCode, Content: s} }
func markup(s string) *Token { return &Token{Kind: TokenMarkup, Content: s} }

func TestNodeTypeNames(t *testing.T) {
	for _, nt := range NodeTypes() {
		name := nt.String()
		assert.NotEmpty(t, name)
		assert.False(t, strings.HasPrefix(name, "NodeType("), "missing name for %d", int(nt))
	}
	assert.Equal(t, "NodeType(99)", NodeType(99).String())
}

func TestWalk_SourceOrder(t *testing.T) {
	doc := &Document{Children: []Node{
		&MarkupElement{TagName: "div", Children: []Node{
			&HtmlAttribute{AttributeName: "class", Children: []Node{
				&HtmlAttributeValue{Children: []Node{markup("a")}},
			}},
			&HtmlContent{Children: []Node{markup("hi")}},
		}},
		&CodeExpression{Children: []Node{code("c.Name")}},
	}}

	var got []string
	Walk(doc, func(n Node) bool {
		got = append(got, n.Type().String())
		return true
	})
	want := []string{
		"Document", "MarkupElement", "HtmlAttribute", "HtmlAttributeValue", "Token",
		"HtmlContent", "Token", "CodeExpression", "Token",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ahic.Name", TextContent(doc))
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := &Document{Children: []Node{
		&MarkupElement{TagName: "div", Children: []Node{&HtmlContent{Children: []Node{markup("x")}}}},
	}}
	count := 0
	Walk(doc, func(n Node) bool {
		count++
		return n.Type() != NodeMarkupElement
	})
	assert.Equal(t, 2, count)
}

func TestMarkupElement_Partition(t *testing.T) {
	attr := &HtmlAttribute{AttributeName: "id"}
	handler := &ComponentAttribute{AttributeName: "onclick"}
	splat := &Splat{Value: code("attrs")}
	key := &SetKey{Value: code("id")}
	ref := &ReferenceCapture{Identifier: code("c.el")}
	body := &HtmlContent{Children: []Node{markup("x")}}
	el := &MarkupElement{TagName: "div", Children: []Node{attr, body, key, handler, ref, splat}}

	assert.Equal(t, []Node{attr, handler, splat}, el.AttributesAndSplats())
	assert.Equal(t, []Node{body}, el.Body())
	assert.Equal(t, []*SetKey{key}, el.SetKeys())
	assert.Equal(t, []*ReferenceCapture{ref}, el.Captures())
}

func genericGrid() *descriptor.Descriptor {
	return descriptor.NewBuilder(descriptor.KindComponent, "app.Grid", "app").
		SetFlag(descriptor.MetaGenericTyped).
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "Grid"}).
		AddAttribute(descriptor.NewAttribute("Items", "[]TItem")).
		AddAttribute(descriptor.NewAttribute("TItem", "any").SetFlag(descriptor.MetaTypeParameter)).
		MustBuild()
}

func TestComponent_NeedsTypeInference(t *testing.T) {
	grid := genericGrid()

	inferred := &Component{TagName: "Grid", Descriptor: grid}
	assert.True(t, inferred.NeedsTypeInference())

	explicit := &Component{TagName: "Grid", Descriptor: grid, Children: []Node{
		&ComponentTypeArgument{TypeParameterName: "TItem", Value: code("app.Row")},
	}}
	assert.False(t, explicit.NeedsTypeInference())

	plain := &Component{TagName: "Counter", Descriptor: descriptor.NewBuilder(descriptor.KindComponent, "Counter", "app").
		AddTagMatchingRule(descriptor.TagMatchingRule{TagName: "Counter"}).MustBuild()}
	assert.False(t, plain.NeedsTypeInference())
}

func TestSetChildren(t *testing.T) {
	el := &MarkupElement{}
	assert.True(t, SetChildren(el, []Node{markup("x")}))
	assert.Len(t, el.Children, 1)
	assert.False(t, SetChildren(&SetKey{}, nil))
}
