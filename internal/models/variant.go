package models

// Variant selects the extraction and assembly rules for one binding family.
// Layers and services share the whole pipeline and differ only in these knobs.
type Variant struct {
	Kind ComponentKind

	// TypeSuffix is appended to the PascalCase component name to find the target type
	TypeSuffix string

	// TogglePrefix marks zero-argument builder methods that flip a boolean option
	TogglePrefix string

	// FactoryDetection enables New<Type> constructor functions as factory descriptors
	FactoryDetection bool

	// FallbackFile is read when the component-named source file does not exist
	FallbackFile string
}

// LayerVariant returns the rules for interceptor layers
func LayerVariant() Variant {
	return Variant{
		Kind:         KindLayer,
		TypeSuffix:   "Layer",
		TogglePrefix: "With",
		FallbackFile: "layer.go",
	}
}

// ServiceVariant returns the rules for backend service configurations
func ServiceVariant() Variant {
	return Variant{
		Kind:             KindService,
		TypeSuffix:       "Service",
		TogglePrefix:     "With",
		FactoryDetection: true,
		FallbackFile:     "service.go",
	}
}

// VariantFor returns the built-in variant for a component kind
func VariantFor(kind ComponentKind) Variant {
	if kind == KindService {
		return ServiceVariant()
	}
	return LayerVariant()
}
