package codegen

import (
	"log/slog"
	"path"
	"strings"

	"github.com/njreid/compgen/pkg/ir"
)

// Mode selects the writer strategy.
type Mode int

const (
	// Runtime output builds the render tree when executed.
	Runtime Mode = iota
	// DesignTime output only type-checks the template code for tooling.
	DesignTime
)

func (m Mode) String() string {
	if m == DesignTime {
		return "designtime"
	}
	return "runtime"
}

// DefaultRuntimeImport is the package generated code builds against.
const DefaultRuntimeImport = "github.com/njreid/compgen/render"

// Options configure code generation. The zero value is usable.
type Options struct {
	Mode Mode
	// Receiver names the receiver of the render method, "c" when empty.
	Receiver string
	// RuntimeImport defaults to DefaultRuntimeImport.
	RuntimeImport string
	// RuntimeAlias is the name generated code uses for the runtime package,
	// the last element of RuntimeImport when empty.
	RuntimeAlias string
	Logger       *slog.Logger
	// Visit, when set, is called with every node before it is written.
	Visit func(ir.Node)

	// TrimWhitespace and CollapseMarkup run the lowering passes of the same
	// name on the document before it is written. Both rewrite the document
	// in place.
	TrimWhitespace bool
	CollapseMarkup bool
}

func (o Options) withDefaults() Options {
	if o.Receiver == "" {
		o.Receiver = "c"
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	if o.RuntimeAlias == "" {
		o.RuntimeAlias = path.Base(o.RuntimeImport)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// valuePart is one buffered fragment of an attribute value.
type valuePart struct {
	code   bool
	prefix string
	node   ir.Node
}

// componentFrame describes the component whose attributes are being
// written.
type componentFrame struct {
	node     *ir.Component
	typeName string
	typeArgs map[string]string
	// factory is set on the type-inference path; attributes are then written
	// as factory arguments.
	factory *inferenceFactory
}

// Context carries the state of one generation run.
type Context struct {
	Writer  *CodeWriter
	Scopes  *ScopeStack
	Options Options

	nodeWriter NodeWriter
	pkg        string
	pending    *[]valuePart
	component  *componentFrame
	factories  []*inferenceFactory
	inferences int
	blocks     int
}

// NewContext prepares a context for writing a document of package pkg with
// w.
func NewContext(w NodeWriter, pkg string, opts Options) *Context {
	opts = opts.withDefaults()
	return &Context{
		Writer:     NewCodeWriter(),
		Scopes:     NewScopeStack(opts.Logger),
		Options:    opts,
		nodeWriter: w,
		pkg:        pkg,
	}
}

// writeStatement writes the children of a code statement on their own line.
// A statement ending in "{" indents what follows until a statement starting
// with "}" closes it.
func (c *Context) writeStatement(n *ir.CodeStatement) error {
	closes, opens := statementBraces(n)
	if closes && c.blocks > 0 {
		c.blocks--
		c.Writer.Dedent()
	}
	if err := c.RenderChildren(n); err != nil {
		return err
	}
	c.Writer.NewLine()
	if opens {
		c.blocks++
		c.Writer.Indent()
	}
	return nil
}

func statementBraces(n *ir.CodeStatement) (closes, opens bool) {
	if len(n.Children) == 0 {
		return false, false
	}
	if t, ok := n.Children[0].(*ir.Token); ok {
		closes = strings.HasPrefix(strings.TrimSpace(t.Content), "}")
	}
	if t, ok := n.Children[len(n.Children)-1].(*ir.Token); ok {
		opens = strings.HasSuffix(strings.TrimSpace(t.Content), "{")
	}
	return closes, opens
}

// NodeWriter returns the strategy nodes are dispatched to.
func (c *Context) NodeWriter() NodeWriter { return c.nodeWriter }

// RenderNode dispatches n to the node writer.
func (c *Context) RenderNode(n ir.Node) error {
	if n == nil {
		panic(contractf("render", "nil node"))
	}
	c.visit(n)
	w := c.nodeWriter
	switch n := n.(type) {
	case *ir.Document:
		return w.WriteDocument(c, n)
	case *ir.Token:
		return w.WriteToken(c, n)
	case *ir.MarkupElement:
		return w.WriteMarkupElement(c, n)
	case *ir.MarkupBlock:
		return w.WriteMarkupBlock(c, n)
	case *ir.HtmlContent:
		return w.WriteHtmlContent(c, n)
	case *ir.HtmlAttribute:
		return w.WriteHtmlAttribute(c, n)
	case *ir.HtmlAttributeValue:
		return w.WriteHtmlAttributeValue(c, n)
	case *ir.CodeExpressionAttributeValue:
		return w.WriteCodeExpressionAttributeValue(c, n)
	case *ir.UsingDirective:
		return w.WriteUsingDirective(c, n)
	case *ir.CodeStatement:
		return w.WriteCodeStatement(c, n)
	case *ir.CodeExpression:
		return w.WriteCodeExpression(c, n)
	case *ir.Component:
		return w.WriteComponent(c, n)
	case *ir.ComponentAttribute:
		return w.WriteComponentAttribute(c, n)
	case *ir.ComponentChildContent:
		return w.WriteComponentChildContent(c, n)
	case *ir.ComponentTypeArgument:
		return w.WriteComponentTypeArgument(c, n)
	case *ir.Template:
		return w.WriteTemplate(c, n)
	case *ir.SetKey:
		return w.WriteSetKey(c, n)
	case *ir.Splat:
		return w.WriteSplat(c, n)
	case *ir.ReferenceCapture:
		return w.WriteReferenceCapture(c, n)
	default:
		panic(contractf("render", "unhandled node %T", n))
	}
}

func (c *Context) visit(n ir.Node) {
	if c.Options.Visit != nil {
		c.Options.Visit(n)
	}
}

// RenderChildren renders the children of n in order.
func (c *Context) RenderChildren(n ir.Node) error {
	return c.renderAll(ir.ChildrenOf(n))
}

func (c *Context) renderAll(nodes []ir.Node) error {
	for _, child := range nodes {
		if err := c.RenderNode(child); err != nil {
			return err
		}
	}
	return nil
}

// BuilderName returns the builder variable of the current scope.
func (c *Context) BuilderName() string { return c.Scopes.BuilderName() }

// rt qualifies a runtime package member.
func (c *Context) rt(name string) string { return c.Options.RuntimeAlias + "." + name }

// collectValues renders the children of an attribute with value fragments
// buffered instead of written.
func (c *Context) collectValues(n ir.Node) ([]valuePart, error) {
	saved := c.pending
	var parts []valuePart
	c.pending = &parts
	defer func() { c.pending = saved }()
	if err := c.RenderChildren(n); err != nil {
		return nil, err
	}
	return parts, nil
}

func (c *Context) bufferValue(n ir.Node, code bool, prefix string) {
	if c.pending == nil {
		panic(contractf("attribute value", "%s outside of an attribute", n.Type()))
	}
	*c.pending = append(*c.pending, valuePart{code: code, prefix: prefix, node: n})
}

// withComponent runs fn with f as the component whose parameters are
// written. A nil f marks content that belongs to no component, such as an
// element or child-content body.
func (c *Context) withComponent(f *componentFrame, fn func() error) error {
	saved := c.component
	c.component = f
	defer func() { c.component = saved }()
	return fn()
}

// inferenceArgument reports whether nodes are currently written as
// arguments of a type-inference factory call.
func (c *Context) inferenceArgument() bool {
	return c.component != nil && c.component.factory != nil
}

// enterScope pushes a frame and returns the function popping it.
func (c *Context) enterScope(kind ScopeKind, parameterName string) (*Scope, func()) {
	s := c.Scopes.Enter(kind, parameterName)
	return s, func() { c.Scopes.Exit(s) }
}
