package descriptor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterBuilder() *Builder {
	return NewBuilder(KindComponent, "app.Counter", "example.com/app").
		SetDisplayName("app.Counter").
		SetMetadata(MetaTypeName, "example.com/app.Counter").
		AddTagMatchingRule(TagMatchingRule{TagName: "Counter", CaseSensitive: true}).
		AddAttribute(NewAttribute("Count", "int").SetPropertyName("Count"))
}

func TestBuilder_BuildIsFrozen(t *testing.T) {
	b := counterBuilder()
	d, err := b.Build()
	require.NoError(t, err)

	b.SetMetadata(MetaGenericTyped, "true")
	b.AddAttribute(NewAttribute("Step", "int"))
	b.SetDisplayName("changed")

	assert.False(t, d.IsGenericTyped())
	assert.Len(t, d.BoundAttributes(), 1)
	assert.Equal(t, "app.Counter", d.DisplayName())

	md := d.Metadata()
	md[MetaTypeName] = "mutated"
	assert.Equal(t, "example.com/app.Counter", d.TypeName())

	rules := d.TagMatchingRules()
	rules[0].TagName = "mutated"
	assert.Equal(t, "Counter", d.TagMatchingRules()[0].TagName)
}

func TestBuilder_DuplicateAttribute(t *testing.T) {
	b := counterBuilder().AddAttribute(NewAttribute("Count", "string"))
	_, err := b.Build()
	require.ErrorIs(t, err, ErrDuplicateAttribute)
}

func TestBuilder_RequiresRule(t *testing.T) {
	_, err := NewBuilder(KindRef, "Ref", "x").Build()
	require.ErrorIs(t, err, ErrNoTagMatchingRule)
	assert.Panics(t, func() { NewBuilder(KindRef, "Ref", "x").MustBuild() })
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		want     AttributeKind
	}{
		{"default", map[string]string{}, AttributeDefault},
		{"enum", map[string]string{MetaEnum: "true"}, AttributeEnum},
		{"enum before delegate", map[string]string{MetaEnum: "true", MetaDelegate: "true"}, AttributeEnum},
		{"child content before delegate", map[string]string{MetaChildContent: "true", MetaDelegate: "true"}, AttributeChildContent},
		{"event callback", map[string]string{MetaEventCallback: "true"}, AttributeEventCallback},
		{"delegate", map[string]string{MetaDelegate: "true"}, AttributeDelegate},
		{"type parameter", map[string]string{MetaTypeParameter: "true"}, AttributeGenericTypeArgument},
		{"flag must be true", map[string]string{MetaEnum: "false"}, AttributeDefault},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.metadata))
		})
	}
}

func TestBoundAttribute_KindFromMetadata(t *testing.T) {
	d := NewBuilder(KindComponent, "app.List", "app").
		AddTagMatchingRule(TagMatchingRule{TagName: "List"}).
		AddAttribute(NewAttribute("Row", "render.RenderFragmentOf[T]").
			SetFlag(MetaChildContent).
			SetFlag(MetaParameterizedChildContent)).
		AddAttribute(NewAttribute("Context", "string").SetFlag(MetaChildContentParameterName)).
		AddAttribute(NewAttribute("Extra", "any").SetFlag(MetaWeaklyTyped)).
		AddAttribute(NewAttribute("T", "any").SetFlag(MetaTypeParameter)).
		MustBuild()

	row := d.Attribute("Row")
	require.NotNil(t, row)
	assert.Equal(t, AttributeChildContent, row.Kind())
	assert.True(t, row.IsParameterizedChildContent())
	assert.True(t, d.Attribute("Context").IsChildContentParameterName())
	assert.True(t, d.Attribute("Extra").IsWeaklyTyped())
	assert.Nil(t, d.Attribute("Missing"))

	tps := d.TypeParameters()
	require.Len(t, tps, 1)
	assert.Equal(t, "T", tps[0].Name())
}

func TestMarshalJSON(t *testing.T) {
	d := counterBuilder().
		AddAttribute(NewAttribute("OnChange", "render.EventCallback").
			SetFlag(MetaEventCallback).
			AddParameter(BoundAttributeParameter{Name: "preventDefault", TypeName: "bool"})).
		MustBuild()

	data, err := MarshalJSON([]*Descriptor{d}, false)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)

	assert.Equal(t, "Component", got[0]["kind"])
	assert.Equal(t, "app.Counter", got[0]["displayName"])
	assert.Equal(t, "example.com/app", got[0]["assemblyName"])
	assert.Equal(t, map[string]any{MetaTypeName: "example.com/app.Counter"}, got[0]["metadata"])

	rules := got[0]["tagMatchingRules"].([]any)
	require.Len(t, rules, 1)
	assert.Equal(t, "Counter", rules[0].(map[string]any)["tagName"])

	attrs := got[0]["boundAttributes"].([]any)
	require.Len(t, attrs, 2)
	onChange := attrs[1].(map[string]any)
	assert.Equal(t, "EventCallback", onChange["kind"])
	assert.Len(t, onChange["parameters"], 1)
}
