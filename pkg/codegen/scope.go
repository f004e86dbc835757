package codegen

import (
	"log/slog"
	"strconv"
)

// ScopeKind says what opened a scope.
type ScopeKind int

const (
	// ScopeRoot is the method body; it owns the root builder.
	ScopeRoot ScopeKind = iota
	// ScopeElement is the body of a markup element or component. It
	// shares the enclosing builder.
	ScopeElement
	// ScopeChildContent and ScopeTemplate open a func literal with a fresh
	// builder parameter.
	ScopeChildContent
	ScopeTemplate
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeRoot:
		return "root"
	case ScopeElement:
		return "element"
	case ScopeChildContent:
		return "child content"
	case ScopeTemplate:
		return "template"
	}
	return "ScopeKind(" + strconv.Itoa(int(k)) + ")"
}

func (k ScopeKind) opensBuilder() bool {
	return k == ScopeRoot || k == ScopeChildContent || k == ScopeTemplate
}

// Scope is one frame of the stack.
type Scope struct {
	Kind ScopeKind
	// BuilderName is the builder variable live in this scope.
	BuilderName string
	// ParameterName is the context parameter of parameterized child
	// content, empty otherwise.
	ParameterName string
	// AttributeName is the child-content attribute being written.
	AttributeName string
	depth         int
}

// IsTemplate reports whether the frame is an inline template.
func (s *Scope) IsTemplate() bool { return s.Kind == ScopeTemplate }

// ScopeStack tracks nested builder names during writing. The first frame is
// the root and holds the root builder.
type ScopeStack struct {
	frames []*Scope
	log    *slog.Logger
}

func NewScopeStack(log *slog.Logger) *ScopeStack {
	if log == nil {
		log = slog.Default()
	}
	s := &ScopeStack{log: log}
	s.frames = append(s.frames, &Scope{Kind: ScopeRoot, BuilderName: BuilderVariable, depth: 1})
	return s
}

// Enter pushes a frame. Frames that open a func literal get a builder name
// unique to their nesting depth: __builder2, __builder3 and so on.
func (s *ScopeStack) Enter(kind ScopeKind, parameterName string) *Scope {
	if kind == ScopeRoot {
		panic(contractf("scope enter", "the root scope cannot be entered"))
	}
	f := &Scope{Kind: kind, ParameterName: parameterName}
	if top := s.Current(); top != nil {
		f.BuilderName = top.BuilderName
		f.depth = top.depth
	} else {
		f.BuilderName = BuilderVariable
		f.depth = 1
	}
	if kind.opensBuilder() {
		f.depth++
		f.BuilderName = BuilderVariable + strconv.Itoa(f.depth)
	}
	s.frames = append(s.frames, f)
	return f
}

// Exit pops f, which must be the most recently entered frame.
func (s *ScopeStack) Exit(f *Scope) {
	switch top := s.Current(); {
	case top == nil:
		contractViolation(s.log, contractf("scope exit", "stack is empty"))
		return
	case top != f:
		contractViolation(s.log, contractf("scope exit", "exiting %s scope while %s scope %s is open", kindOf(f), top.Kind, top.BuilderName))
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Current returns the innermost frame, or nil when the stack is empty.
func (s *ScopeStack) Current() *Scope {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// BuilderName returns the builder variable of the innermost frame.
func (s *ScopeStack) BuilderName() string {
	top := s.Current()
	if top == nil {
		panic(contractf("builder name", "scope stack is empty"))
	}
	return top.BuilderName
}

// Depth counts the frames on the stack, the root included.
func (s *ScopeStack) Depth() int { return len(s.frames) }

func kindOf(f *Scope) string {
	if f == nil {
		return "nil"
	}
	return f.Kind.String()
}
