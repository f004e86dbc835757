package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/njreid/compgen/pkg/descriptor"
	"github.com/njreid/compgen/pkg/ir"
)

type factoryParamKind int

const (
	factoryAttribute factoryParamKind = iota
	factorySplat
	factoryChildContent
	factoryKey
	factoryCapture
)

type factoryParam struct {
	kind factoryParamKind
	name string
	typ  string
}

// sequenced reports whether the parameter is preceded by a sequence number.
func (p factoryParam) sequenced() bool { return p.kind != factoryKey }

// inferenceFactory is a generic function that opens a component whose type
// arguments the Go compiler infers from the arguments it is called with.
type inferenceFactory struct {
	name        string
	component   string
	typeParams  []string
	constraints []string
	params      []factoryParam
}

// instance is the component type instantiated with the factory's own type
// parameters.
func (f *inferenceFactory) instance() string {
	return f.component + "[" + strings.Join(f.typeParams, ", ") + "]"
}

// writeInferredComponent writes a call to a new factory, passing each
// attribute, child content and capture as a sequence number and a value,
// and each key as a value alone. The declaration is written later by
// WriteTypeInferenceFactories.
func writeInferredComponent(ctx *Context, n *ir.Component) error {
	component := componentTypeName(ctx, n)
	f := &inferenceFactory{
		name:      fmt.Sprintf("%s%s_%d", typeInferencePrefix, shortName(component), ctx.inferences),
		component: component,
	}
	ctx.inferences++
	for _, tp := range n.Descriptor.TypeParameters() {
		constraint := tp.TypeName()
		if constraint == "" {
			constraint = "any"
		}
		f.typeParams = append(f.typeParams, tp.Name())
		f.constraints = append(f.constraints, localize(constraint, ctx.pkg))
	}
	args := explicitTypeArguments(n)
	ctx.factories = append(ctx.factories, f)

	var items []ir.Node
	for _, c := range n.AttributesAndSplats() {
		if a, ok := c.(*ir.ComponentAttribute); ok && skipAttribute(a) {
			continue
		}
		items = append(items, c)
	}
	for _, c := range n.ChildContents() {
		items = append(items, c)
	}
	for _, c := range n.SetKeys() {
		items = append(items, c)
	}
	for _, c := range n.Captures() {
		items = append(items, c)
	}

	frame := &componentFrame{node: n, typeName: f.instance(), typeArgs: args, factory: f}
	return ctx.withComponent(frame, func() error {
		for _, ta := range n.TypeArguments() {
			if err := ctx.RenderNode(ta); err != nil {
				return err
			}
		}
		ctx.Writer.Write(f.name)
		if explicit := explicitPrefix(f.typeParams, args); len(explicit) > 0 {
			ctx.Writer.Write("[" + strings.Join(explicit, ", ") + "]")
		}
		ctx.Writer.Writef("(%s, %s", ctx.BuilderName(), ctx.nodeWriter.Sequence())
		for _, item := range items {
			p, err := factoryParamOf(ctx, f, item)
			if err != nil {
				return err
			}
			f.params = append(f.params, p)
			ctx.Writer.Write(", ")
			if p.sequenced() {
				ctx.Writer.Writef("%s, ", ctx.nodeWriter.Sequence())
			}
			if err := ctx.RenderNode(item); err != nil {
				return err
			}
		}
		ctx.Writer.Write(")\n")
		return nil
	})
}

// explicitPrefix returns the explicit type arguments usable as a partial
// instantiation: those of the leading type parameters, stopping at the
// first parameter left to inference.
func explicitPrefix(params []string, args map[string]string) []string {
	var out []string
	for _, p := range params {
		v, ok := args[p]
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func factoryParamOf(ctx *Context, f *inferenceFactory, item ir.Node) (factoryParam, error) {
	switch n := item.(type) {
	case *ir.ComponentAttribute:
		return factoryParam{kind: factoryAttribute, name: attributeName(n), typ: factoryAttributeType(ctx, f, n)}, nil
	case *ir.Splat:
		return factoryParam{kind: factorySplat, typ: AttributeCollection}, nil
	case *ir.ComponentChildContent:
		typ := n.TypeName
		if typ == "" && n.BoundAttribute != nil {
			typ = n.BoundAttribute.TypeName()
		}
		if typ == "" {
			typ = ctx.rt(RenderFragment)
		}
		return factoryParam{kind: factoryChildContent, name: n.AttributeName, typ: localize(typ, ctx.pkg)}, nil
	case *ir.SetKey:
		return factoryParam{kind: factoryKey, typ: "any"}, nil
	case *ir.ReferenceCapture:
		return factoryParam{kind: factoryCapture, typ: "**" + f.instance()}, nil
	}
	return factoryParam{}, &UnsupportedShapeError{Node: item, Reason: "cannot be passed to a type inference factory"}
}

// factoryAttributeType is the declared parameter type. Event callbacks over
// a type parameter cannot be built before the parameter is known and are
// passed untyped.
func factoryAttributeType(ctx *Context, f *inferenceFactory, n *ir.ComponentAttribute) string {
	if n.Minimized {
		return "bool"
	}
	typ := n.TypeName
	a := n.BoundAttribute
	if typ == "" && a != nil {
		typ = a.TypeName()
	}
	if typ == "" {
		return "any"
	}
	typ = localize(typ, ctx.pkg)
	if a != nil && a.Kind() == descriptor.AttributeEventCallback && mentionsTypeParameter(typ, f.typeParams) {
		return "any"
	}
	return typ
}

// WriteTypeInferenceFactories writes the declarations of the factories
// called by the render method.
func (c *Context) WriteTypeInferenceFactories() {
	builder := c.rt(BuilderType)
	for _, f := range c.factories {
		w := c.Writer
		w.NewLine().Write("\n")
		tparams := make([]string, len(f.typeParams))
		for i, tp := range f.typeParams {
			tparams[i] = tp + " " + f.constraints[i]
		}
		w.Writef("func %s", f.name)
		if len(tparams) > 0 {
			w.Writef("[%s]", strings.Join(tparams, ", "))
		}
		w.Writef("(%s *%s, seq int", BuilderVariable, builder)
		for i, p := range f.params {
			if p.sequenced() {
				w.Writef(", __seq%d int", i)
			}
			w.Writef(", __arg%d %s", i, p.typ)
		}
		w.Write(") {\n").Indent()
		w.Writef("%s[%s](%s, seq)\n", c.rt(OpenComponent), f.instance(), BuilderVariable)
		for i, p := range f.params {
			seq, arg := "__seq"+strconv.Itoa(i), "__arg"+strconv.Itoa(i)
			switch p.kind {
			case factoryAttribute, factoryChildContent:
				w.Writef("%s.%s(%s, %s, %s)\n", BuilderVariable, AddAttribute, seq, strconv.Quote(p.name), arg)
			case factorySplat:
				w.Writef("%s.%s(%s, %s)\n", BuilderVariable, AddMultipleAttributes, seq, arg)
			case factoryKey:
				w.Writef("%s.%s(%s)\n", BuilderVariable, SetKey, arg)
			case factoryCapture:
				w.Writef("%s.%s(%s, func(%s any) { *%s = %s.(*%s) })\n",
					BuilderVariable, AddComponentReferenceCapture, seq, captureParameter, arg, captureParameter, f.instance())
			}
		}
		w.Writef("%s.%s()\n", BuilderVariable, CloseComponent)
		w.Dedent().Write("}\n")
	}
}
