package render

type Builder struct{}

type Component interface {
	BuildRenderTree(b *Builder)
}

// ComponentBase is embedded by components.
type ComponentBase struct {
	rendered bool
}

func (c *ComponentBase) StateHasChanged() { c.rendered = false }

type RenderFragment func(b *Builder)

type RenderFragmentOf[T any] func(value T) RenderFragment

type EventCallback struct{}

type EventCallbackOf[T any] struct{}

type ElementReference struct {
	ID string
}

type MouseEventArgs struct {
	X, Y int
}

type ChangeEventArgs struct {
	Value any
}

// EventHandlers declares the events elements raise.
//
//compgen:eventhandler onclick example.com/app/render.MouseEventArgs preventDefault=true
//compgen:eventhandler onchange example.com/app/render.ChangeEventArgs
type EventHandlers struct{}
