package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeStack_BuilderNames(t *testing.T) {
	s := NewScopeStack(nil)
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, "__builder", s.BuilderName())

	el := s.Enter(ScopeElement, "")
	assert.Equal(t, "__builder", el.BuilderName)

	cc := s.Enter(ScopeChildContent, "item")
	assert.Equal(t, "__builder2", cc.BuilderName)
	assert.Equal(t, "item", s.Current().ParameterName)

	inner := s.Enter(ScopeElement, "")
	assert.Equal(t, "__builder2", inner.BuilderName)

	tmpl := s.Enter(ScopeTemplate, "")
	assert.Equal(t, "__builder3", tmpl.BuilderName)
	assert.True(t, tmpl.IsTemplate())
	assert.Equal(t, 5, s.Depth())

	s.Exit(tmpl)
	s.Exit(inner)
	s.Exit(cc)
	assert.Equal(t, "__builder", s.BuilderName())

	// A sibling lambda reuses the depth-based name.
	again := s.Enter(ScopeTemplate, "")
	assert.Equal(t, "__builder2", again.BuilderName)
	s.Exit(again)
	s.Exit(el)
	assert.Equal(t, 1, s.Depth())
}

func TestScopeStack_RootCannotBeEntered(t *testing.T) {
	s := NewScopeStack(nil)
	assert.Panics(t, func() { s.Enter(ScopeRoot, "") })
}
