package column

import (
	"context"
	"fmt"

	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// CostParams holds the economic, design and physical parameters of a column.
type CostParams struct {
	BaseHeight float64
	ConCost    float64
	MaxTrays   int
	MinTrays   int
	OpHrs      float64
	OpPres     float64
	OpYrs      float64
	RecovHK    float64
	RecovLK    float64
	RoL        float64
	Scost      float64
	TF         float64
	TrayHeight float64
	Uexch      float64
	Wcost      float64

	// Lambda is the latent heat of vaporization of each component (MJ/kmol).
	// Empty implies solver defaults.
	Lambda []float64
	// PM is the molecular weight of each component. Empty implies solver
	// defaults.
	PM []float64
}

var costSchema = param.NewSchema(
	param.Double("BaseHeight", "Fixed height (m) added to column independent of number of trays",
		func(p *CostParams) *float64 { return &p.BaseHeight }, param.WithDefault(4.0)),
	param.Double("ConCost", "Installation cost of a condenser (USD)",
		func(p *CostParams) *float64 { return &p.ConCost }, param.WithDefault(15000.0)),
	param.Int("MaxTrays", "Maximum number of trays in a column",
		func(p *CostParams) *int { return &p.MaxTrays }, param.WithDefault(200)),
	param.Int("MinTrays", "Minimum number of trays in a column",
		func(p *CostParams) *int { return &p.MinTrays }, param.WithDefault(2)),
	param.Double("OpHrs", "Hours of operation in a year",
		func(p *CostParams) *float64 { return &p.OpHrs }, param.WithDefault(8000.0)),
	param.Double("OpPres", "Column pressure (atm)",
		func(p *CostParams) *float64 { return &p.OpPres }, param.WithDefault(1.0)),
	param.Double("OpYrs", "Years of operation",
		func(p *CostParams) *float64 { return &p.OpYrs }, param.WithDefault(2.0)),
	param.Double("RecovHK", "Recovery of assumed heavy key in bottoms",
		func(p *CostParams) *float64 { return &p.RecovHK }, param.WithDefault(0.98)),
	param.Double("RecovLK", "Recovery of assumed light key in distillate.",
		func(p *CostParams) *float64 { return &p.RecovLK }, param.WithDefault(0.98)),
	param.Double("RoL", "Liquid density (kg/m3)",
		func(p *CostParams) *float64 { return &p.RoL }, param.WithDefault(735.0)),
	param.Double("Scost", "Steam cost (USD/MJ)",
		func(p *CostParams) *float64 { return &p.Scost }, param.WithDefault(5.09e-3)),
	param.Double("TF", "Feed temperature (K)",
		func(p *CostParams) *float64 { return &p.TF }, param.WithDefault(362.7286)),
	param.Double("TrayHeight", "Height of 1 tray (m)",
		func(p *CostParams) *float64 { return &p.TrayHeight }, param.WithDefault(0.6)),
	param.Double("Uexch", "Heat transfer coefficient (W/m2/K)",
		func(p *CostParams) *float64 { return &p.Uexch }, param.WithDefault(800.0)),
	param.Double("Wcost", "Cooling water cost (USD/MJ)",
		func(p *CostParams) *float64 { return &p.Wcost }, param.WithDefault(0.19e-3)),
)

// NewCostParams returns cost parameters with every default applied.
func NewCostParams(ctx context.Context) (*CostParams, error) {
	p := &CostParams{}
	if err := costSchema.ApplyDefaults(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to initialize cost parameters: %w", err)
	}
	return p, nil
}

// MustNewCostParams is like NewCostParams but panics on error.
func MustNewCostParams(ctx context.Context) *CostParams {
	p, err := NewCostParams(ctx)
	if err != nil {
		panic(err)
	}
	return p
}

// AssignValue converts raw and stores it in the field named by d.Key.
func (p *CostParams) AssignValue(ctx context.Context, d param.Descriptor, raw any, strict bool) error {
	return costSchema.AssignValue(ctx, p, d, raw, strict)
}

// Value returns the current value of the field named by key.
func (p *CostParams) Value(key string) (cty.Value, error) {
	return costSchema.Value(p, key)
}
