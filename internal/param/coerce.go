package param

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// coerce converts raw into a cty.Number suitable for a field of the given
// kind. A null result means the value is absent.
//
// Conversion is locale-invariant: strings are parsed with '.' as the only
// decimal separator. For int kinds the number must be whole and fit in an
// int, except that a raw Go float is first rounded half to even.
func coerce(raw any, kind Kind) (cty.Value, error) {
	raw = indirect(raw)

	val, err := toCtyValue(raw)
	if err != nil {
		return cty.NilVal, err
	}
	if val.IsNull() {
		return cty.NullVal(cty.Number), nil
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, errors.New("value is not known")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return cty.NilVal, err
	}
	if num.IsNull() {
		return cty.NullVal(cty.Number), nil
	}

	if kind.isInt() {
		if isGoFloat(raw) && !num.AsBigFloat().IsInt() {
			f, _ := num.AsBigFloat().Float64()
			num = cty.NumberFloatVal(math.RoundToEven(f))
		}
		var probe int
		if err := gocty.FromCtyValue(num, &probe); err != nil {
			return cty.NilVal, err
		}
	}
	return num, nil
}

// indirect follows pointers so that a nil *float64 is treated as absent.
func indirect(raw any) any {
	for raw != nil {
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Pointer {
			return raw
		}
		if rv.IsNil() {
			return nil
		}
		raw = rv.Elem().Interface()
	}
	return nil
}

func toCtyValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return v, nil
	case string:
		return cty.StringVal(strings.TrimSpace(v)), nil
	case bool:
		return cty.NilVal, errors.New("a bool value cannot be used as a number")
	}

	if isGoFloat(raw) && math.IsNaN(reflect.ValueOf(raw).Float()) {
		return cty.NilVal, errors.New("NaN is not a number")
	}

	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported value type %T: %w", raw, err)
	}
	return gocty.ToCtyValue(raw, ty)
}

func isGoFloat(raw any) bool {
	if raw == nil {
		return false
	}
	switch reflect.TypeOf(raw).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
