package param

import (
	"fmt"
	"reflect"
)

// Kind tags the scalar type of a parameter field.
type Kind int

const (
	// KindDouble is a required float64 field.
	KindDouble Kind = iota
	// KindOptionalDouble is a *float64 field; nil means absent.
	KindOptionalDouble
	// KindInt is a required int field.
	KindInt
	// KindOptionalInt is an *int field; nil means absent.
	KindOptionalInt
)

func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindOptionalDouble:
		return "optional_double"
	case KindInt:
		return "int"
	case KindOptionalInt:
		return "optional_int"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText lets descriptors encode their kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Nullable reports whether the kind is an optional wrapper.
func (k Kind) Nullable() bool {
	return k == KindOptionalDouble || k == KindOptionalInt
}

func (k Kind) isInt() bool {
	return k == KindInt || k == KindOptionalInt
}

// goType is the Go field type a kind must be declared with.
func (k Kind) goType() reflect.Type {
	switch k {
	case KindDouble:
		return reflect.TypeFor[float64]()
	case KindOptionalDouble:
		return reflect.TypeFor[*float64]()
	case KindInt:
		return reflect.TypeFor[int]()
	case KindOptionalInt:
		return reflect.TypeFor[*int]()
	default:
		return nil
	}
}

// scalarName is the name of the underlying scalar type, used in error messages.
func (k Kind) scalarName() string {
	if k.isInt() {
		return "int"
	}
	return "float64"
}

// Descriptor describes one parameter. Descriptors are plain values: two
// extractions of the same schema compare equal with ==.
type Descriptor struct {
	// Key is the exact Go field name on the holder.
	Key string `json:"key"`
	// Label is the description, with a " (default X)" suffix when a default
	// is declared.
	Label string `json:"label"`
	// Default is nil when no default is declared.
	Default any `json:"default,omitempty"`
	// Nullable is true when absence of a value is legal.
	Nullable bool `json:"nullable"`
	Kind     Kind `json:"kind"`
}

// Required returns a descriptor for a parameter that is supplied outside any
// holder: the label equals the key, there is no default and it is not nullable.
func Required(key string) Descriptor {
	return Descriptor{Key: key, Label: key}
}

// HasDefault reports whether a default value was declared.
func (d Descriptor) HasDefault() bool {
	return d.Default != nil
}

func (d Descriptor) String() string {
	return d.Key
}

func label(description string, def any) string {
	if def == nil {
		return description
	}
	return fmt.Sprintf("%s (default %v)", description, def)
}
