// Package param implements the parameter-metadata and value-assignment engine
// shared by every parameter holder.
//
// A holder is a plain Go struct whose scalar fields are both the storage and
// the schema of a set of user-editable parameters. Each holder type declares
// its parameters once, in a static Schema built with NewSchema and the typed
// field constructors (Double, OptionalDouble, Int, OptionalInt). The schema is
// checked against the struct with reflection exactly once, at registration:
// a key that names no field, a field of the wrong Go type, or an accessor that
// points at a different field is a programmer error and panics immediately.
//
// After registration the schema provides:
//
//   - Descriptors: the ordered parameter descriptors (key, label, default,
//     nullability, kind) used by user interfaces.
//   - AssignValue: typed, fallible coercion of an externally supplied raw value
//     into one field, in strict or non-strict mode.
//   - ApplyDefaults: strict assignment of every required field's default,
//     run by holder constructors.
//
// Coercion is built on the go-cty type system. Raw values may be strings,
// Go numbers, pointers to either, or cty values decoded from configuration.
//
// Nothing in this package locks. Schemas are immutable once built; a holder
// instance must not be assigned into from several goroutines at once.
package param
