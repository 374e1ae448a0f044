package param

import (
	"fmt"
	"reflect"
)

// Field is one declared parameter of holder type H. Build fields with
// Double, OptionalDouble, Int or OptionalInt and pass them to NewSchema.
type Field[H any] struct {
	desc Descriptor
	// target returns a pointer to the field inside h: *float64, **float64,
	// *int or **int depending on the kind.
	target func(h *H) any
}

// FieldOption customizes a declared field.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	def any
}

// WithDefault declares the field's default value. Defaults are converted to
// the field type when a holder is initialized, not at declaration.
func WithDefault(v any) FieldOption {
	return func(o *fieldOptions) {
		o.def = v
	}
}

func newField[H any](kind Kind, key, description string, target func(*H) any, opts []FieldOption) Field[H] {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Field[H]{
		desc: Descriptor{
			Key:      key,
			Label:    label(description, o.def),
			Default:  o.def,
			Nullable: kind.Nullable(),
			Kind:     kind,
		},
		target: target,
	}
}

// Double declares a required float64 parameter.
func Double[H any](key, description string, field func(*H) *float64, opts ...FieldOption) Field[H] {
	return newField(KindDouble, key, description, func(h *H) any { return field(h) }, opts)
}

// OptionalDouble declares a *float64 parameter whose absence is legal.
func OptionalDouble[H any](key, description string, field func(*H) **float64, opts ...FieldOption) Field[H] {
	return newField(KindOptionalDouble, key, description, func(h *H) any { return field(h) }, opts)
}

// Int declares a required int parameter.
func Int[H any](key, description string, field func(*H) *int, opts ...FieldOption) Field[H] {
	return newField(KindInt, key, description, func(h *H) any { return field(h) }, opts)
}

// OptionalInt declares an *int parameter whose absence is legal.
func OptionalInt[H any](key, description string, field func(*H) **int, opts ...FieldOption) Field[H] {
	return newField(KindOptionalInt, key, description, func(h *H) any { return field(h) }, opts)
}

// Schema is the static parameter table of holder type H. It is immutable
// after NewSchema returns and safe for concurrent use.
type Schema[H any] struct {
	typeName string
	fields   []Field[H]
	byKey    map[string]int
}

// NewSchema registers the parameters of holder type H in declaration order.
//
// Every field is checked against H once: the key must name an exported
// struct field whose Go type matches the kind, and the accessor must address
// that same field. Any mismatch breaks the contract with the solver that
// consumes the holder, so NewSchema panics.
func NewSchema[H any](fields ...Field[H]) *Schema[H] {
	holderType := reflect.TypeFor[H]()
	if holderType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("param: holder type %s is not a struct", holderType))
	}

	s := &Schema[H]{
		typeName: holderType.Name(),
		fields:   make([]Field[H], 0, len(fields)),
		byKey:    make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if err := checkField(holderType, f); err != nil {
			panic(fmt.Sprintf("param: %s: %v", s.typeName, err))
		}
		if _, exists := s.byKey[f.desc.Key]; exists {
			panic(fmt.Sprintf("param: %s: parameter '%s' already registered", s.typeName, f.desc.Key))
		}
		s.byKey[f.desc.Key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

func checkField[H any](holderType reflect.Type, f Field[H]) error {
	key := f.desc.Key
	if key == "" {
		return fmt.Errorf("parameter key is empty")
	}
	if f.target == nil {
		return fmt.Errorf("parameter '%s' has no accessor", key)
	}

	sf, ok := holderType.FieldByName(key)
	if !ok || !sf.IsExported() {
		return fmt.Errorf("parameter '%s' does not name an exported field", key)
	}
	if want := f.desc.Kind.goType(); sf.Type != want {
		return fmt.Errorf("parameter '%s' is declared %s but field has Go type %s", key, f.desc.Kind, sf.Type)
	}

	var probe H
	named := reflect.ValueOf(&probe).Elem().FieldByIndex(sf.Index).Addr().Pointer()
	addressed := reflect.ValueOf(f.target(&probe))
	if addressed.Kind() != reflect.Pointer || addressed.IsNil() || addressed.Pointer() != named {
		return fmt.Errorf("accessor of parameter '%s' does not address field %s", key, sf.Name)
	}
	return nil
}

// TypeName returns the name of the holder type.
func (s *Schema[H]) TypeName() string {
	return s.typeName
}

// Descriptors returns the parameter descriptors in declaration order. The
// returned slice is freshly allocated on every call.
func (s *Schema[H]) Descriptors() []Descriptor {
	out := make([]Descriptor, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.desc
	}
	return out
}

// Lookup returns the descriptor registered under key.
func (s *Schema[H]) Lookup(key string) (Descriptor, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Descriptor{}, false
	}
	return s.fields[i].desc, true
}

// Keys returns the registered keys in declaration order.
func (s *Schema[H]) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.desc.Key
	}
	return keys
}
