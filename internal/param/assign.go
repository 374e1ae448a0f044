package param

import (
	"context"

	"github.com/specialistvlad/colparams/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// AbsentPolicy names what AssignValue does with an absent value aimed at a
// required (non-nullable) field.
type AbsentPolicy int

const (
	// AbsentIgnored leaves the required field at its current value and
	// reports no error. A blank edit can therefore never reset a required
	// parameter to a zero value.
	AbsentIgnored AbsentPolicy = iota
)

// RequiredAbsentPolicy is the policy AssignValue applies.
const RequiredAbsentPolicy = AbsentIgnored

// AssignValue converts raw and stores it in the field of h named by d.Key.
// Only the key of d is used; the field's own declared kind drives the
// conversion.
//
// An unknown key always returns a *FieldNotFoundError. A value that cannot
// be converted returns a *ConversionError when strict is true; otherwise it
// is logged and dropped. In both cases the field keeps its prior value.
// A nil raw value clears an optional field and, per RequiredAbsentPolicy,
// leaves a required field untouched.
func (s *Schema[H]) AssignValue(ctx context.Context, h *H, d Descriptor, raw any, strict bool) error {
	i, ok := s.byKey[d.Key]
	if !ok {
		return &FieldNotFoundError{TypeName: s.typeName, Key: d.Key}
	}
	f := s.fields[i]
	logger := ctxlog.FromContext(ctx).With("holder", s.typeName, "key", d.Key)

	val, err := coerce(raw, f.desc.Kind)
	if err == nil {
		if val.IsNull() && !f.desc.Nullable {
			logger.Debug("Absent value for required parameter ignored.")
			return nil
		}
		err = store(val, f.target(h))
	}

	if err != nil {
		convErr := &ConversionError{
			TypeName: f.desc.Kind.scalarName(),
			Key:      d.Key,
			Raw:      raw,
			Err:      err,
		}
		if strict {
			return convErr
		}
		logger.Warn("Parameter value ignored.", "raw", raw, "error", convErr)
		return nil
	}

	logger.Debug("Parameter value assigned.", "raw", raw)
	return nil
}

// ApplyDefaults assigns the declared default of every non-nullable parameter
// to h in strict mode. Nullable parameters are left untouched. A required
// parameter without a default, or with a default that does not convert,
// fails with a *ConversionError.
func (s *Schema[H]) ApplyDefaults(ctx context.Context, h *H) error {
	for _, f := range s.fields {
		if f.desc.Nullable {
			continue
		}
		if !f.desc.HasDefault() {
			return &ConversionError{
				TypeName: f.desc.Kind.scalarName(),
				Key:      f.desc.Key,
				Err:      ErrMissingDefault,
			}
		}
		if err := s.AssignValue(ctx, h, f.desc, f.desc.Default, true); err != nil {
			return err
		}
	}
	return nil
}

// store writes a coerced number through target. Optional fields always get
// a freshly allocated value so a holder never aliases caller memory.
func store(val cty.Value, target any) error {
	switch p := target.(type) {
	case **float64:
		if val.IsNull() {
			*p = nil
			return nil
		}
		var v float64
		if err := gocty.FromCtyValue(val, &v); err != nil {
			return err
		}
		*p = &v
		return nil
	case **int:
		if val.IsNull() {
			*p = nil
			return nil
		}
		var v int
		if err := gocty.FromCtyValue(val, &v); err != nil {
			return err
		}
		*p = &v
		return nil
	default:
		return gocty.FromCtyValue(val, target)
	}
}

// Value returns the current value of the field named by key as a cty.Number,
// or a null number when an optional field is absent.
func (s *Schema[H]) Value(h *H, key string) (cty.Value, error) {
	i, ok := s.byKey[key]
	if !ok {
		return cty.NilVal, &FieldNotFoundError{TypeName: s.typeName, Key: key}
	}
	return gocty.ToCtyValue(s.fields[i].target(h), cty.Number)
}
