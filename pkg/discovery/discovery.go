// Package discovery walks a type catalog and synthesizes the descriptors a
// template binder matches against: components, their child-content
// parameters, element event handlers and the element reference capture.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/njreid/compgen/pkg/catalog"
	"github.com/njreid/compgen/pkg/descriptor"
)

// DefaultRuntimePackage is the import path of the runtime generated code
// builds against.
const DefaultRuntimePackage = "github.com/njreid/compgen/render"

// WellKnown names the framework types and attributes discovery keys on. All
// type names are fully qualified.
type WellKnown struct {
	ComponentInterface    string
	ComponentBase         string
	ParameterAttribute    string
	RenderFragment        string
	RenderFragmentOf      string
	EventCallback         string
	EventCallbackOf       string
	EventHandlerAttribute string
	ElementReference      string
	// EventHandlersTypeName is the short name of types declaring element
	// events.
	EventHandlersTypeName string
	// ContextAttribute names the attribute choosing the parameter name of
	// parameterized child content.
	ContextAttribute string
}

// DefaultWellKnown targets DefaultRuntimePackage and the compgen marker
// convention of the gotypes catalog.
func DefaultWellKnown() WellKnown {
	return WellKnownFor(DefaultRuntimePackage, "compgen")
}

// WellKnownFor targets a runtime package at pkgPath whose attributes use the
// given marker.
func WellKnownFor(pkgPath, marker string) WellKnown {
	q := func(name string) string { return pkgPath + "." + name }
	return WellKnown{
		ComponentInterface:    q("Component"),
		ComponentBase:         q("ComponentBase"),
		ParameterAttribute:    marker + ":parameter",
		RenderFragment:        q("RenderFragment"),
		RenderFragmentOf:      q("RenderFragmentOf"),
		EventCallback:         q("EventCallback"),
		EventCallbackOf:       q("EventCallbackOf"),
		EventHandlerAttribute: marker + ":eventhandler",
		ElementReference:      q("ElementReference"),
		EventHandlersTypeName: "EventHandlers",
		ContextAttribute:      "Context",
	}
}

// DefaultSkipPrefixes lists program names that never declare components.
var DefaultSkipPrefixes = []string{
	"golang.org/x/",
	"google.golang.org/protobuf/",
	"github.com/stretchr/testify/",
}

// Options configure a Discoverer.
type Options struct {
	// WellKnown defaults to DefaultWellKnown() when ComponentInterface is
	// empty.
	WellKnown WellKnown
	// SkipPrefixes defaults to DefaultSkipPrefixes when nil. Programs whose
	// name starts with one of them are not walked.
	SkipPrefixes []string
	// Parallelism bounds concurrent program walks; values below 1 mean 1.
	Parallelism int
	Logger      *slog.Logger
}

// Feature is an independently gated part of discovery.
type Feature string

const (
	FeatureComponents    Feature = "components"
	FeatureEventHandlers Feature = "eventhandlers"
	FeatureRef           Feature = "ref"
)

// Discoverer produces descriptors from a catalog. It is safe for concurrent
// use; classification of each type is computed once.
type Discoverer struct {
	cat  catalog.Catalog
	wk   WellKnown
	skip []string
	par  int
	log  *slog.Logger

	components sync.Map // full type name -> []*descriptor.Descriptor

	mu       sync.Mutex
	disabled map[Feature]string
}

func New(cat catalog.Catalog, opts Options) *Discoverer {
	if cat == nil {
		panic("discovery: nil catalog")
	}
	if opts.WellKnown.ComponentInterface == "" {
		opts.WellKnown = DefaultWellKnown()
	}
	if opts.SkipPrefixes == nil {
		opts.SkipPrefixes = DefaultSkipPrefixes
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Discoverer{
		cat:      cat,
		wk:       opts.WellKnown,
		skip:     opts.SkipPrefixes,
		par:      opts.Parallelism,
		log:      opts.Logger,
		disabled: make(map[Feature]string),
	}
}

// Discover runs every feature. Components and event handlers follow program
// order; the ref descriptor, when available, comes last.
func (d *Discoverer) Discover(ctx context.Context) ([]*descriptor.Descriptor, error) {
	components, err := d.Components(ctx)
	if err != nil {
		return nil, err
	}
	handlers, err := d.EventHandlers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*descriptor.Descriptor, 0, len(components)+len(handlers)+1)
	out = append(out, components...)
	out = append(out, handlers...)
	out = append(out, d.Ref()...)
	return out, nil
}

// Components returns two descriptors per component type (short name, then
// fully-qualified name) followed by their child-content descriptors.
func (d *Discoverer) Components(ctx context.Context) ([]*descriptor.Descriptor, error) {
	if !d.requireType(FeatureComponents, d.wk.ComponentInterface) ||
		!d.requireAttribute(FeatureComponents, d.wk.ParameterAttribute) {
		return nil, nil
	}
	return d.collect(ctx, func(t *catalog.Type) ([]*descriptor.Descriptor, error) {
		if !d.isComponent(t) {
			return nil, nil
		}
		if cached, ok := d.components.Load(t.FullName()); ok {
			return cached.([]*descriptor.Descriptor), nil
		}
		ds, err := d.componentDescriptors(t)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", t.FullName(), err)
		}
		actual, _ := d.components.LoadOrStore(t.FullName(), ds)
		return actual.([]*descriptor.Descriptor), nil
	})
}

// EventHandlers returns one descriptor per event-handler attribute found on
// EventHandlers types.
func (d *Discoverer) EventHandlers(ctx context.Context) ([]*descriptor.Descriptor, error) {
	if !d.requireAttribute(FeatureEventHandlers, d.wk.EventHandlerAttribute) {
		return nil, nil
	}
	return d.collect(ctx, d.eventHandlerDescriptors)
}

// Ref returns the element reference descriptor, or nothing when the element
// reference type cannot be resolved.
func (d *Discoverer) Ref() []*descriptor.Descriptor {
	if !d.requireType(FeatureRef, d.wk.ElementReference) {
		return nil
	}
	return []*descriptor.Descriptor{refDescriptor(d.wk)}
}

// Disabled returns the features turned off so far with the well-known name
// that could not be resolved.
func (d *Discoverer) Disabled() map[Feature]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.disabled)
}

func (d *Discoverer) requireType(f Feature, name string) bool {
	if _, ok := d.cat.ResolveByName(name); ok {
		return true
	}
	d.disable(f, name)
	return false
}

func (d *Discoverer) requireAttribute(f Feature, name string) bool {
	r, ok := d.cat.(catalog.AttributeResolver)
	if !ok || r.ResolveAttribute(name) {
		return true
	}
	d.disable(f, name)
	return false
}

func (d *Discoverer) disable(f Feature, missing string) {
	d.mu.Lock()
	_, seen := d.disabled[f]
	d.disabled[f] = missing
	d.mu.Unlock()
	if !seen {
		d.log.Info("feature disabled", "feature", string(f), "missing", missing)
	}
}

// collect applies visit to every type of every walked program. Programs are
// walked concurrently; results keep program order.
func (d *Discoverer) collect(ctx context.Context, visit func(*catalog.Type) ([]*descriptor.Descriptor, error)) ([]*descriptor.Descriptor, error) {
	programs := d.cat.Programs()
	results := make([][]*descriptor.Descriptor, len(programs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.par)
	for i, p := range programs {
		if d.skipped(p) {
			d.log.Debug("skipping program", "program", p.Name)
			continue
		}
		g.Go(func() error {
			var out []*descriptor.Descriptor
			err := walkProgram(ctx, d.cat, p, func(t *catalog.Type) error {
				ds, err := visit(t)
				out = append(out, ds...)
				return err
			})
			if err != nil {
				return fmt.Errorf("program %s: %w", p.Name, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*descriptor.Descriptor
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (d *Discoverer) skipped(p *catalog.Program) bool {
	for _, prefix := range d.skip {
		if strings.HasPrefix(p.Name, prefix) {
			return true
		}
	}
	return false
}
