package parser

const (
	// FactoryPrefix is prepended to the target type name to form the factory function name
	FactoryPrefix = "New"

	// DefaultFactoryArgument names an unnamed factory parameter
	DefaultFactoryArgument = "value"

	// Exclusion reasons
	ReasonUnexported       = "unexported"
	ReasonReturnType       = "does not return the target type"
	ReasonTooManyParams    = "takes more than one parameter"
	ReasonNoTogglePrefix   = "takes no parameter and has no toggle prefix"
	ReasonParameterless    = "parameterless factory, the zero value is used instead"
	ReasonGenericReceiver  = "generic receiver"
	ReasonNotFactoryShaped = "function is not the New<Type> factory"
)
