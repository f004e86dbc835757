package discovery

import (
	"context"

	"github.com/njreid/compgen/pkg/catalog"
)

// walkProgram visits the types of p depth-first through its namespaces, in
// member declaration order. Namespaces reachable twice are visited once.
func walkProgram(ctx context.Context, cat catalog.Catalog, p *catalog.Program, visit func(*catalog.Type) error) error {
	seen := make(map[catalog.Symbol]bool)
	var walk func(sym catalog.Symbol) error
	walk = func(sym catalog.Symbol) error {
		if seen[sym] {
			return nil
		}
		seen[sym] = true
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, m := range cat.EnumerateMembers(sym) {
			switch m := m.(type) {
			case *catalog.Namespace:
				if err := walk(m); err != nil {
					return err
				}
			case *catalog.Type:
				if err := visit(m); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(p)
}
