package column

import (
	"context"
	"fmt"

	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// Set is the pair of holders that one solver invocation consumes. It routes
// a key to whichever holder declares it.
type Set struct {
	Cost   *CostParams
	Solver *SolverParams
}

// NewSet returns a Set of freshly defaulted holders.
func NewSet(ctx context.Context) (*Set, error) {
	cost, err := NewCostParams(ctx)
	if err != nil {
		return nil, err
	}
	solver, err := NewSolverParams(ctx)
	if err != nil {
		return nil, err
	}
	return &Set{Cost: cost, Solver: solver}, nil
}

// Holder returns the holder that declares key together with its descriptor.
func (s *Set) Holder(key string) (Assigner, param.Descriptor, bool) {
	if d, ok := solverSchema.Lookup(key); ok {
		return s.Solver, d, true
	}
	if d, ok := costSchema.Lookup(key); ok {
		return s.Cost, d, true
	}
	return nil, param.Descriptor{}, false
}

// Assign converts raw and stores it in the holder that declares key. A key
// declared by neither holder, including the required parameters, fails with
// param.ErrFieldNotFound regardless of strict.
func (s *Set) Assign(ctx context.Context, key string, raw any, strict bool) error {
	h, d, ok := s.Holder(key)
	if !ok {
		return &param.FieldNotFoundError{TypeName: "column parameter set", Key: key}
	}
	return h.AssignValue(ctx, d, raw, strict)
}

// Value returns the current value of key from whichever holder declares it.
func (s *Set) Value(key string) (cty.Value, error) {
	h, _, ok := s.Holder(key)
	if !ok {
		return cty.NilVal, &param.FieldNotFoundError{TypeName: "column parameter set", Key: key}
	}
	v, err := h.Value(key)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}
