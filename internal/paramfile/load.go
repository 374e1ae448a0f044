package paramfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/ctxlog"
	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither HCL nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported parameter file format")

// Result holds what a parameter file supplied besides holder values.
type Result struct {
	// Required maps each required parameter found in the file to its value,
	// unconverted.
	Required map[string]cty.Value
	// Keys lists the holder keys the file set, in application order.
	Keys []string
}

// entry is one value read from a file section.
type entry struct {
	key   string
	value any
	// where is a human readable source position.
	where string
}

// Load reads the parameter file at path and assigns its cost and solver
// values into set. Unknown keys always fail; unconvertible values fail only
// when strict is true.
func Load(ctx context.Context, path string, set *column.Set, strict bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parameter file loading started.", "path", path, "strict", strict)

	var (
		sections map[string][]entry
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		sections, err = readHCL(path)
	case ".yaml", ".yml":
		sections, err = readYAML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Required: make(map[string]cty.Value)}

	for _, e := range sections["required"] {
		if !slices.ContainsFunc(column.RequiredParameters(), func(d param.Descriptor) bool { return d.Key == e.key }) {
			return nil, fmt.Errorf("%s: %w", e.where, &param.FieldNotFoundError{TypeName: "required parameters", Key: e.key})
		}
		v, err := toCty(e.value)
		if err != nil {
			return nil, fmt.Errorf("%s: required parameter %s: %w", e.where, e.key, err)
		}
		res.Required[e.key] = v
	}

	holders := []struct {
		section string
		holder  column.Assigner
	}{
		{"solver", set.Solver},
		{"cost", set.Cost},
	}
	for _, h := range holders {
		for _, e := range sections[h.section] {
			if err := h.holder.AssignValue(ctx, param.Required(e.key), e.value, strict); err != nil {
				return nil, fmt.Errorf("%s: %w", e.where, err)
			}
			res.Keys = append(res.Keys, e.key)
		}
	}

	logger.Info("Parameter file loaded.", "path", path, "values", len(res.Keys), "required", len(res.Required))
	return res, nil
}

// fileRoot lists the sections a parameter file may contain.
type fileRoot struct {
	Required *section `hcl:"required,block"`
	Cost     *section `hcl:"cost,block"`
	Solver   *section `hcl:"solver,block"`
}

type section struct {
	Body hcl.Body `hcl:",remain"`
}

func readHCL(path string) (map[string][]entry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	sections := make(map[string][]entry)
	for name, sec := range map[string]*section{"required": root.Required, "cost": root.Cost, "solver": root.Solver} {
		if sec == nil {
			continue
		}
		entries, err := sectionEntries(sec.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s block in %s: %w", name, path, err)
		}
		sections[name] = entries
	}
	return sections, nil
}

// sectionEntries evaluates every attribute of a section body, in source order.
func sectionEntries(body hcl.Body) ([]entry, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	entries := make([]entry, 0, len(ordered))
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		entries = append(entries, entry{key: attr.Name, value: val, where: attr.Range.String()})
	}
	return entries, nil
}

type yamlRoot struct {
	Required map[string]any `yaml:"required"`
	Cost     map[string]any `yaml:"cost"`
	Solver   map[string]any `yaml:"solver"`
}

func readYAML(path string) (map[string][]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var root yamlRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	sections := make(map[string][]entry)
	for name, values := range map[string]map[string]any{"required": root.Required, "cost": root.Cost, "solver": root.Solver} {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sections[name] = append(sections[name], entry{key: k, value: values[k], where: fmt.Sprintf("%s: %s.%s", path, name, k)})
		}
	}
	return sections, nil
}

// toCty represents a required value as cty without converting it.
func toCty(v any) (cty.Value, error) {
	switch v := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return v, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, err
	}
	return gocty.ToCtyValue(v, ty)
}
