package descriptor

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts d to its export shape:
//
//	{kind, displayName, assemblyName, tagMatchingRules, boundAttributes, metadata}
func ToStruct(d *Descriptor) (*structpb.Struct, error) {
	rules := make([]any, 0, len(d.rules))
	for _, r := range d.rules {
		required := make([]any, 0, len(r.Attributes))
		for _, ra := range r.Attributes {
			required = append(required, map[string]any{
				"name":          ra.Name,
				"isDirective":   ra.IsDirective,
				"caseSensitive": ra.CaseSensitive,
			})
		}
		rule := map[string]any{
			"tagName":       r.TagName,
			"caseSensitive": r.CaseSensitive,
			"attributes":    required,
		}
		if r.ParentTag != "" {
			rule["parentTag"] = r.ParentTag
		}
		rules = append(rules, rule)
	}

	attrs := make([]any, 0, len(d.attributes))
	for _, a := range d.attributes {
		params := make([]any, 0, len(a.parameters))
		for _, p := range a.parameters {
			params = append(params, map[string]any{
				"name":          p.Name,
				"typeName":      p.TypeName,
				"documentation": p.Documentation,
			})
		}
		attrs = append(attrs, map[string]any{
			"name":          a.name,
			"typeName":      a.typeName,
			"propertyName":  a.propertyName,
			"documentation": a.documentation,
			"kind":          a.kind.String(),
			"metadata":      stringMap(a.metadata),
			"parameters":    params,
		})
	}

	s, err := structpb.NewStruct(map[string]any{
		"kind":             d.kind.String(),
		"name":             d.name,
		"displayName":      d.displayName,
		"assemblyName":     d.assemblyName,
		"documentation":    d.documentation,
		"tagMatchingRules": rules,
		"boundAttributes":  attrs,
		"metadata":         stringMap(d.metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", d, err)
	}
	return s, nil
}

// MarshalJSON renders descriptors as a JSON array in their export shape.
func MarshalJSON(ds []*Descriptor, indent bool) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(ds))}
	for _, d := range ds {
		s, err := ToStruct(d)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	opts := protojson.MarshalOptions{}
	if indent {
		opts.Multiline = true
		opts.Indent = "  "
	}
	return opts.Marshal(list)
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
