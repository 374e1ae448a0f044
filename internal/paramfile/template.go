package paramfile

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// WriteTemplate renders the current values of set as an HCL parameter file
// that Load accepts. Parameters appear in user interface order, each preceded
// by its label. Absent optional values and the required parameters are
// written as null.
func WriteTemplate(w io.Writer, set *column.Set) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	required := root.AppendNewBlock("required", nil).Body()
	for _, d := range column.RequiredParameters() {
		required.SetAttributeValue(d.Key, cty.NullVal(cty.DynamicPseudoType))
	}

	var solver, cost []param.Descriptor
	for _, d := range column.UserInterfaceDescriptors() {
		h, _, ok := set.Holder(d.Key)
		if !ok {
			return fmt.Errorf("no holder declares %s", d.Key)
		}
		if h == column.Assigner(set.Solver) {
			solver = append(solver, d)
		} else {
			cost = append(cost, d)
		}
	}

	for _, sec := range []struct {
		name string
		ds   []param.Descriptor
	}{
		{"solver", solver},
		{"cost", cost},
	} {
		root.AppendNewline()
		body := root.AppendNewBlock(sec.name, nil).Body()
		for _, d := range sec.ds {
			v, err := set.Value(d.Key)
			if err != nil {
				return err
			}
			body.AppendUnstructuredTokens(hclwrite.Tokens{
				{Type: hclsyntax.TokenComment, Bytes: []byte("# " + d.Label + "\n")},
			})
			body.SetAttributeValue(d.Key, v)
		}
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}
