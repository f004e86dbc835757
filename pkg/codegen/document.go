package codegen

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/njreid/compgen/pkg/ir"
)

// Result is the generated source of one document.
type Result struct {
	Code       string
	Mappings   []SourceMapping
	Directives []Directive
}

// Generate writes the Go file for doc: the package clause, imports, the
// render method of the document's type and the type-inference factories.
// Contract violations raised while writing are returned as
// *ContractError.
func Generate(doc *ir.Document, opts Options) (res *Result, err error) {
	if doc == nil {
		return nil, fmt.Errorf("generate: %w: document", ErrNilInput)
	}
	if doc.Package == "" || doc.TypeName == "" {
		return nil, fmt.Errorf("generate: %w: document package and type name are required", ErrNilInput)
	}
	if opts.TrimWhitespace {
		TrimWhitespace(doc)
	}
	if opts.CollapseMarkup {
		if err := CollapseMarkup(doc); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
	}

	var w NodeWriter = NewRuntimeWriter()
	if opts.Mode == DesignTime {
		w = NewDesignTimeWriter()
	}
	ctx := NewContext(w, doc.Package, opts)
	log := ctx.Options.Logger.With("type", doc.TypeName, "mode", ctx.Options.Mode)

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ContractError)
			if !ok {
				panic(r)
			}
			log.Debug("generation aborted", "error", ce)
			res, err = nil, ce
		}
	}()

	writeHeader(ctx, doc)
	if err := writeRenderMethod(ctx, doc); err != nil {
		log.Debug("generation failed", "error", err)
		return nil, err
	}
	ctx.WriteTypeInferenceFactories()

	log.Debug("generated", "bytes", len(ctx.Writer.String()), "mappings", len(ctx.Writer.Mappings()), "factories", len(ctx.factories))
	return &Result{
		Code:       ctx.Writer.String(),
		Mappings:   ctx.Writer.Mappings(),
		Directives: ctx.Writer.Directives(),
	}, nil
}

func writeHeader(ctx *Context, doc *ir.Document) {
	w := ctx.Writer
	w.WriteLine("// Code generated by compgen. DO NOT EDIT.")
	w.WriteLine("")
	w.Writef("package %s\n\n", doc.Package)

	w.WriteLine("import (").Indent()
	if ctx.Options.Mode == DesignTime && needsReflect(doc) {
		w.WriteLine(`"reflect"`)
		w.WriteLine("")
	}
	runtime := strconv.Quote(ctx.Options.RuntimeImport)
	if ctx.Options.RuntimeAlias != path.Base(ctx.Options.RuntimeImport) {
		runtime = ctx.Options.RuntimeAlias + " " + runtime
	}
	w.WriteLine(runtime)

	seen := map[string]bool{runtime: true, strconv.Quote(ctx.Options.RuntimeImport): true}
	for _, u := range usings(doc) {
		spec := strings.TrimSpace(u.Content)
		if spec == "" || seen[spec] {
			continue
		}
		seen[spec] = true
		w.WriteMapped(u.Span, spec).NewLine()
	}
	w.Dedent().WriteLine(")")
	w.WriteLine("")
}

func writeRenderMethod(ctx *Context, doc *ir.Document) error {
	w := ctx.Writer
	w.Writef("func (%s *%s) %s(%s *%s) {\n", ctx.Options.Receiver, doc.TypeName, RenderMethodName, BuilderVariable, ctx.rt(BuilderType)).Indent()
	if ctx.Options.Mode == DesignTime {
		w.Writef("var %s any\n", DesignTimeVar)
		w.Writef("_ = %s\n", DesignTimeVar)
	}
	if err := ctx.RenderNode(doc); err != nil {
		return err
	}
	if d := ctx.Scopes.Depth(); d != 1 {
		panic(contractf("generate", "%d scopes left open", d-1))
	}
	w.NewLine().Dedent().WriteLine("}")
	return nil
}

// needsReflect reports whether design-time output names a type through
// reflect.TypeFor.
func needsReflect(doc *ir.Document) bool {
	found := false
	ir.Walk(doc, func(n ir.Node) bool {
		switch n := n.(type) {
		case *ir.ComponentTypeArgument:
			found = true
		case *ir.Component:
			if !n.NeedsTypeInference() {
				found = true
			}
		}
		return !found
	})
	return found
}

func usings(doc *ir.Document) []*ir.UsingDirective {
	var out []*ir.UsingDirective
	ir.Walk(doc, func(n ir.Node) bool {
		if u, ok := n.(*ir.UsingDirective); ok {
			out = append(out, u)
		}
		return true
	})
	return out
}
