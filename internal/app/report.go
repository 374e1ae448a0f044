package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// reportEntry is one user interface parameter and its current value.
type reportEntry struct {
	param.Descriptor
	Value any `json:"value"`
}

type report struct {
	Required   map[string]any `json:"required"`
	Parameters []reportEntry  `json:"parameters"`
}

func (a *App) buildReport() (*report, error) {
	set, required := a.snapshot()
	r := &report{Required: make(map[string]any)}
	for _, d := range column.RequiredParameters() {
		r.Required[d.Key] = nativeValue(required[d.Key])
	}
	for _, d := range column.UserInterfaceDescriptors() {
		v, err := set.Value(d.Key)
		if err != nil {
			return nil, err
		}
		r.Parameters = append(r.Parameters, reportEntry{Descriptor: d, Value: nativeValue(v)})
	}
	return r, nil
}

func (a *App) writeReport() error {
	r, err := a.buildReport()
	if err != nil {
		return err
	}
	if a.config.Output == "json" {
		return writeJSON(a.outW, r)
	}

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tDESCRIPTION")
	for _, d := range column.RequiredParameters() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Key, formatValue(r.Required[d.Key]), "required")
	}
	for _, e := range r.Parameters {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, formatValue(e.Value), e.Label)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nativeValue turns a cty scalar into a JSON friendly Go value. Null and
// missing values become nil.
func nativeValue(v cty.Value) any {
	if v.Type() == cty.NilType || !v.IsKnown() || v.IsNull() {
		return nil
	}
	switch v.Type() {
	case cty.Number:
		return json.Number(v.AsBigFloat().Text('g', -1))
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return v.True()
	default:
		return v.GoString()
	}
}

func formatValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
