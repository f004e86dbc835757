package ui

import "example.com/app/render"

type Mode int

const (
	ModeCompact Mode = iota
	ModeWide
)

// Counter counts clicks.
type Counter struct {
	render.ComponentBase

	Title        string                `compgen:"parameter"`
	Mode         Mode                  `compgen:"parameter"`
	OnClick      render.EventCallback  `compgen:"parameter"`
	ChildContent render.RenderFragment `compgen:"parameter"`

	count int
}

func (c *Counter) BuildRenderTree(b *render.Builder) {}

type Grid[TItem any] struct {
	render.ComponentBase

	Items []TItem                        `compgen:"parameter"`
	Row   render.RenderFragmentOf[TItem] `compgen:"parameter"`
}

func (g *Grid[TItem]) BuildRenderTree(b *render.Builder) {}

type helper struct{}

func (helper) BuildRenderTree(*render.Builder) {}
