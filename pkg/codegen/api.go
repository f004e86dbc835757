package codegen

// Names used in generated code. Builder methods are called on the live
// builder variable; functions are qualified with the runtime package alias.
const (
	BuilderVariable = "__builder"
	DesignTimeVar   = "__o"
	// DesignTimeSequence replaces sequence numbers in design-time output.
	DesignTimeSequence = "-1"

	BuilderType      = "Builder"
	RenderMethodName = "BuildRenderTree"

	AddMarkupContent             = "AddMarkupContent"
	AddContent                   = "AddContent"
	OpenElement                  = "OpenElement"
	CloseElement                 = "CloseElement"
	CloseComponent               = "CloseComponent"
	AddAttribute                 = "AddAttribute"
	AddMultipleAttributes        = "AddMultipleAttributes"
	SetKey                       = "SetKey"
	AddElementReferenceCapture   = "AddElementReferenceCapture"
	AddComponentReferenceCapture = "AddComponentReferenceCapture"

	OpenComponent         = "OpenComponent"
	TypeCheck             = "TypeCheck"
	CreateEventCallback   = "CreateEventCallback"
	CreateEventCallbackOf = "CreateEventCallbackOf"
	RenderFragment        = "RenderFragment"
	RenderFragmentOf      = "RenderFragmentOf"
	EventCallbackOf       = "EventCallbackOf"
	ElementReference      = "ElementReference"
	Stringify             = "Stringify"

	// AttributeCollection is the type splat expressions are checked against.
	AttributeCollection = "map[string]any"

	typeInferencePrefix = "typeInferenceCreate"
	captureParameter    = "__value"
)
