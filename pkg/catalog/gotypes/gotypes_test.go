package gotypes

import (
	"context"
	"go/ast"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njreid/compgen/pkg/catalog"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want []catalog.Attribute
	}{
		{`compgen:"parameter"`, []catalog.Attribute{{Type: "compgen:parameter"}}},
		{`json:"x" compgen:"parameter, captureUnmatched"`, []catalog.Attribute{{Type: "compgen:parameter", Args: []string{"captureUnmatched"}}}},
		{`json:"x"`, nil},
		{``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseTag("compgen", tt.tag)); diff != "" {
				t.Errorf("parseTag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMarkers(t *testing.T) {
	doc := &ast.CommentGroup{List: []*ast.Comment{
		{Text: "// EventHandlers declares events."},
		{Text: "//compgen:eventhandler onclick render.MouseEventArgs preventDefault=true"},
		{Text: "//other:marker x"},
		{Text: "//compgen:eventhandler onblur render.FocusEventArgs"},
	}}
	want := []catalog.Attribute{
		{Type: "compgen:eventhandler", Args: []string{"onclick", "render.MouseEventArgs"}, Named: map[string]string{"preventDefault": "true"}},
		{Type: "compgen:eventhandler", Args: []string{"onblur", "render.FocusEventArgs"}},
	}
	if diff := cmp.Diff(want, parseMarkers("compgen", doc)); diff != "" {
		t.Errorf("parseMarkers() mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, parseMarkers("compgen", nil))
}

func loadFixture(t *testing.T) *Catalog {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping package loading in short mode")
	}
	c, err := Load(context.Background(), Config{
		Dir:        "testdata/app",
		Interfaces: []string{"example.com/app/render.Component"},
	})
	require.NoError(t, err)
	return c
}

func TestLoad_Programs(t *testing.T) {
	c := loadFixture(t)

	var names []string
	for _, p := range c.Programs() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"example.com/app/render", "example.com/app/ui", "example.com/app/widgets/v2"}, names)

	ns := c.EnumerateMembers(c.Programs()[1])
	require.Len(t, ns, 1)
	var typeNames []string
	for _, m := range c.EnumerateMembers(ns[0]) {
		typeNames = append(typeNames, m.(*catalog.Type).Name)
	}
	assert.Equal(t, []string{"Mode", "Counter", "Grid", "helper"}, typeNames)
}

func TestLoad_Component(t *testing.T) {
	c := loadFixture(t)

	counter, ok := c.ResolveByName("example.com/app/ui.Counter")
	require.True(t, ok)
	assert.Equal(t, catalog.KindClass, counter.Kind)
	assert.True(t, counter.Public)
	assert.True(t, counter.Implements("example.com/app/render.Component"))
	assert.Equal(t, "Counter counts clicks.", counter.Documentation)
	require.NotNil(t, counter.Base)
	assert.Equal(t, "example.com/app/render.ComponentBase", counter.Base.Name)

	props := map[string]*catalog.Property{}
	var order []string
	for _, m := range c.EnumerateMembers(counter) {
		p := m.(*catalog.Property)
		props[p.Name] = p
		order = append(order, p.Name)
	}
	assert.Equal(t, []string{"Title", "Mode", "OnClick", "ChildContent", "count"}, order)

	assert.Equal(t, catalog.KindEnum, props["Mode"].Type.Kind)
	assert.Equal(t, "ui.Mode", props["Mode"].Type.String())
	assert.Equal(t, catalog.KindDelegate, props["ChildContent"].Type.Kind)
	assert.Equal(t, "example.com/app/render.RenderFragment", props["ChildContent"].Type.Name)
	assert.Equal(t, "render.RenderFragment", props["ChildContent"].Type.String())
	assert.Equal(t, catalog.NonPublicSetter, props["count"].Setter)
	assert.Equal(t, []catalog.Attribute{{Type: "compgen:parameter"}}, c.AttributesOf(props["Title"]))
	assert.Empty(t, c.AttributesOf(props["count"]))

	base, ok := c.ResolveByName("example.com/app/render.ComponentBase")
	require.True(t, ok)
	assert.False(t, base.Implements("example.com/app/render.Component"))

	helper, ok := c.ResolveByName("example.com/app/ui.helper")
	require.True(t, ok)
	assert.False(t, helper.Public)
}

func TestLoad_PackageNameAndPointerBase(t *testing.T) {
	c := loadFixture(t)

	button, ok := c.ResolveByName("example.com/app/widgets/v2.Button")
	require.True(t, ok)
	assert.Equal(t, "example.com/app/widgets/v2", button.Namespace)
	assert.Equal(t, "widgets", button.Package)
	assert.True(t, button.Implements("example.com/app/render.Component"))

	require.NotNil(t, button.Base)
	assert.Equal(t, "example.com/app/widgets/v2.Labeled", button.Base.Name)
	labeled, ok := c.ResolveByName(button.Base.Name)
	require.True(t, ok)
	assert.Equal(t, "example.com/app/render.ComponentBase", labeled.Base.Name)

	counter, ok := c.ResolveByName("example.com/app/ui.Counter")
	require.True(t, ok)
	assert.Equal(t, "ui", counter.Package)
}

func TestLoad_Generic(t *testing.T) {
	c := loadFixture(t)

	grid, ok := c.ResolveByName("example.com/app/ui.Grid")
	require.True(t, ok)
	assert.Equal(t, []string{"TItem"}, grid.TypeParameters)
	assert.Equal(t, "any", grid.Constraint(0))
	assert.True(t, grid.Implements("example.com/app/render.Component"))

	members := c.EnumerateMembers(grid)
	require.Len(t, members, 2)
	row := members[1].(*catalog.Property)
	assert.Equal(t, "example.com/app/render.RenderFragmentOf", row.Type.Name)
	assert.Equal(t, "render.RenderFragmentOf[TItem]", row.Type.String())
	require.Len(t, row.Type.Args, 1)
	assert.Equal(t, catalog.KindTypeParameter, row.Type.Args[0].Kind)

	items := members[0].(*catalog.Property)
	assert.Equal(t, catalog.KindComposite, items.Type.Kind)
	assert.Equal(t, "[]TItem", items.Type.String())
}

func TestLoad_EventHandlerMarkers(t *testing.T) {
	c := loadFixture(t)

	eh, ok := c.ResolveByName("example.com/app/render.EventHandlers")
	require.True(t, ok)
	attrs := c.AttributesOf(eh)
	require.Len(t, attrs, 2)
	assert.Equal(t, "compgen:eventhandler", attrs[0].Type)
	assert.Equal(t, []string{"onclick", "example.com/app/render.MouseEventArgs"}, attrs[0].Args)
	assert.Equal(t, "true", attrs[0].Named["preventDefault"])
	assert.Equal(t, "onchange", attrs[1].Arg(0))
	assert.Equal(t, "EventHandlers declares the events elements raise.", eh.Documentation)

	assert.True(t, c.ResolveAttribute("compgen:parameter"))
	assert.False(t, c.ResolveAttribute("other:parameter"))
}
