package column

import (
	"context"
	"fmt"

	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// SolverParams holds the options of the numeric solver. Nil optional fields
// leave the corresponding limit unset.
type SolverParams struct {
	Tolerance   float64
	MaxIter     int
	MultiStarts int
	VapFactor   float64
	Verbosity   int

	Seed       *int
	TimeLimit  *float64
	MaxColumns *int
	MaxDuty    *float64
}

var solverSchema = param.NewSchema(
	param.Double("Tolerance", "Relative convergence tolerance of the solver",
		func(p *SolverParams) *float64 { return &p.Tolerance }, param.WithDefault(1e-6)),
	param.Int("MaxIter", "Maximum number of solver iterations",
		func(p *SolverParams) *int { return &p.MaxIter }, param.WithDefault(3000)),
	param.Int("MultiStarts", "Number of initial points for multistart search",
		func(p *SolverParams) *int { return &p.MultiStarts }, param.WithDefault(10)),
	param.Double("VapFactor", "Ratio of operating to minimum vapor flow",
		func(p *SolverParams) *float64 { return &p.VapFactor }, param.WithDefault(1.2)),
	param.Int("Verbosity", "Solver output level (0 is silent)",
		func(p *SolverParams) *int { return &p.Verbosity }, param.WithDefault(0)),
	param.OptionalInt("Seed", "Random seed for multistart; random when empty",
		func(p *SolverParams) **int { return &p.Seed }),
	param.OptionalDouble("TimeLimit", "Wall-clock limit on total solver time (s)",
		func(p *SolverParams) **float64 { return &p.TimeLimit }),
	param.OptionalInt("MaxColumns", "Upper bound on number of columns in a configuration",
		func(p *SolverParams) **int { return &p.MaxColumns }),
	param.OptionalDouble("MaxDuty", "Upper bound on total reboiler heat duty (MW)",
		func(p *SolverParams) **float64 { return &p.MaxDuty }),
)

// NewSolverParams returns solver parameters with every default applied.
func NewSolverParams(ctx context.Context) (*SolverParams, error) {
	p := &SolverParams{}
	if err := solverSchema.ApplyDefaults(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to initialize solver parameters: %w", err)
	}
	return p, nil
}

// MustNewSolverParams is like NewSolverParams but panics on error.
func MustNewSolverParams(ctx context.Context) *SolverParams {
	p, err := NewSolverParams(ctx)
	if err != nil {
		panic(err)
	}
	return p
}

// AssignValue converts raw and stores it in the field named by d.Key.
func (p *SolverParams) AssignValue(ctx context.Context, d param.Descriptor, raw any, strict bool) error {
	return solverSchema.AssignValue(ctx, p, d, raw, strict)
}

// Value returns the current value of the field named by key.
func (p *SolverParams) Value(key string) (cty.Value, error) {
	return solverSchema.Value(p, key)
}
