// Package widgets lives in a major-version directory, so its name differs
// from the last element of its import path.
package widgets

import "example.com/app/render"

// Labeled carries parameters shared by widgets.
type Labeled struct {
	render.ComponentBase

	Label string `compgen:"parameter"`
}

// Button embeds its base through a pointer.
type Button struct {
	*Labeled

	Disabled bool `compgen:"parameter"`
}

func (b *Button) BuildRenderTree(*render.Builder) {}
