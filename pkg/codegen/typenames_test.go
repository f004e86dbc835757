package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	tests := []struct{ in, pkg, want string }{
		{"app.Row", "app", "Row"},
		{"[]app.Row", "app", "[]Row"},
		{"render.RenderFragmentOf[app.Row]", "app", "render.RenderFragmentOf[Row]"},
		{"myapp.Row", "app", "myapp.Row"},
		{"ui.Grid", "app", "ui.Grid"},
		{"app.Row", "", "app.Row"},
		{"map[app.Key]other.app.Row", "app", "map[Key]other.app.Row"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localize(tt.in, tt.pkg), tt.in)
	}
}

func TestSubstituteTypeParameters(t *testing.T) {
	args := map[string]string{"T": "int", "TItem": "app.Row"}
	assert.Equal(t, "render.RenderFragmentOf[app.Row]", substituteTypeParameters("render.RenderFragmentOf[TItem]", args))
	assert.Equal(t, "map[int][]app.Row", substituteTypeParameters("map[T][]TItem", args))
	assert.Equal(t, "TValue", substituteTypeParameters("TValue", args))
	assert.Equal(t, "[]T", substituteTypeParameters("[]T", nil))

	assert.Equal(t, "ui.T[int]", substituteTypeParameters("ui.T[T]", map[string]string{"T": "int"}))
	assert.Equal(t, "func(Ä) T_1", substituteTypeParameters("func(Ä) T_1", map[string]string{"T": "int"}))

	assert.True(t, mentionsTypeParameter("func(TItem) string", []string{"TItem"}))
	assert.False(t, mentionsTypeParameter("ui.TItem", []string{"TItem"}))
	assert.False(t, mentionsTypeParameter("TItem", nil))
	assert.False(t, mentionsTypeParameter("func(TItems) string", []string{"TItem"}))
}

func TestTypeArgumentOf(t *testing.T) {
	tests := []struct {
		in, generic, want string
		ok                bool
	}{
		{"render.EventCallbackOf[render.MouseEventArgs]", EventCallbackOf, "render.MouseEventArgs", true},
		{"EventCallbackOf[int]", EventCallbackOf, "int", true},
		{"render.RenderFragmentOf[map[string]int]", RenderFragmentOf, "map[string]int", true},
		{"render.EventCallback", EventCallbackOf, "", false},
		{"render.OtherOf[int]", EventCallbackOf, "", false},
		{"render.EventCallbackOf[int, string]", EventCallbackOf, "", false},
	}
	for _, tt := range tests {
		got, ok := typeArgumentOf(tt.in, tt.generic)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestConversionType(t *testing.T) {
	assert.Equal(t, "(func(int) string)", conversionType("func(int) string"))
	assert.Equal(t, "(*ui.Counter)", conversionType("*ui.Counter"))
	assert.Equal(t, "render.RenderFragment", conversionType("render.RenderFragment"))
	assert.Equal(t, "Grid", shortName("ui.Grid[T]"))
}
