package descriptor

import "fmt"

// AttributeKind selects how a bound attribute value is emitted.
type AttributeKind int

const (
	AttributeDefault AttributeKind = iota
	AttributeEnum
	AttributeChildContent
	AttributeEventCallback
	AttributeDelegate
	AttributeGenericTypeArgument
)

func (k AttributeKind) String() string {
	switch k {
	case AttributeDefault:
		return "Default"
	case AttributeEnum:
		return "Enum"
	case AttributeChildContent:
		return "ChildContent"
	case AttributeEventCallback:
		return "EventCallback"
	case AttributeDelegate:
		return "Delegate"
	case AttributeGenericTypeArgument:
		return "GenericTypeArgument"
	default:
		return fmt.Sprintf("AttributeKind(%d)", int(k))
	}
}

// Classify maps attribute metadata to an emission kind. The order mirrors
// the precedence used by discovery: a synthesized type parameter first, then
// enum, child content, event callback, delegate.
func Classify(metadata map[string]string) AttributeKind {
	switch {
	case metadata[MetaTypeParameter] == "true":
		return AttributeGenericTypeArgument
	case metadata[MetaEnum] == "true":
		return AttributeEnum
	case metadata[MetaChildContent] == "true":
		return AttributeChildContent
	case metadata[MetaEventCallback] == "true":
		return AttributeEventCallback
	case metadata[MetaDelegate] == "true":
		return AttributeDelegate
	default:
		return AttributeDefault
	}
}

// IsWeaklyTyped reports whether the weakly-typed flag is present. It applies
// to every kind.
func IsWeaklyTyped(metadata map[string]string) bool {
	return metadata[MetaWeaklyTyped] == "true"
}
