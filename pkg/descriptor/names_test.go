package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTypeName(t *testing.T) {
	tests := []struct{ in, path, name string }{
		{"example.com/widgets/v2.Button", "example.com/widgets/v2", "Button"},
		{"gopkg.in/yaml.v3.Node", "gopkg.in/yaml.v3", "Node"},
		{"example.com/app/ui.Grid[example.com/app/ui.Row]", "example.com/app/ui", "Grid[example.com/app/ui.Row]"},
		{"Fw.MouseEventArgs", "Fw", "MouseEventArgs"},
		{"int", "", "int"},
	}
	for _, tt := range tests {
		path, name := SplitTypeName(tt.in)
		assert.Equal(t, tt.path, path, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct{ in, pkg, want string }{
		{"example.com/widgets/v2.Button", "widgets", "widgets.Button"},
		{"example.com/widgets/v2.Button", "", "widgets.Button"},
		{"example.com/lib/folder.Thing", "realname", "realname.Thing"},
		{"gopkg.in/yaml.v3.Node", "", "yaml.Node"},
		{"github.com/go-chi/chi/v5.Router", "", "chi.Router"},
		{"github.com/mattn/go-sqlite3.Conn", "", "sqlite3.Conn"},
		{"github.com/njreid/compgen/render.MouseEventArgs", "", "render.MouseEventArgs"},
		{"Fw.MouseEventArgs", "", "Fw.MouseEventArgs"},
		{"string", "", "string"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceName(tt.in, tt.pkg), tt.in)
	}
}

func TestPackageName(t *testing.T) {
	d := NewBuilder(KindComponent, "example.com/widgets/v2.Button", "example.com/widgets/v2").
		SetMetadata(MetaTypeName, "example.com/widgets/v2.Button").
		SetMetadata(MetaPackageName, "widgets").
		AddTagMatchingRule(TagMatchingRule{TagName: "Button"}).
		MustBuild()
	assert.Equal(t, "widgets", d.PackageName())
}
