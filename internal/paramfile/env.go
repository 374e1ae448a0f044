package paramfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/ctxlog"
	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

// EnvPrefix marks environment variables that carry parameter values, as in
// COLPARAMS_MaxTrays=150. The part after the prefix is the exact key.
const EnvPrefix = "COLPARAMS_"

// ReadEnvFile returns the variables of a dotenv file. A missing file yields
// no variables. The process environment is not modified.
func ReadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return vars, nil
}

// EnvMap turns KEY=VALUE pairs, as returned by os.Environ, into a map.
func EnvMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

// LoadEnv assigns every prefixed variable of vars into set, in key order.
// Required parameters are collected as unconverted strings. A prefixed
// variable that names no parameter is an error, as in a parameter file.
func LoadEnv(ctx context.Context, vars map[string]string, set *column.Set, strict bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{Required: make(map[string]cty.Value)}

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		key, ok := strings.CutPrefix(name, EnvPrefix)
		if !ok {
			continue
		}
		if slices.ContainsFunc(column.RequiredParameters(), func(d param.Descriptor) bool { return d.Key == key }) {
			res.Required[key] = cty.StringVal(vars[name])
			continue
		}
		if err := set.Assign(ctx, key, vars[name], strict); err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", name, err)
		}
		res.Keys = append(res.Keys, key)
	}

	if len(res.Keys) > 0 || len(res.Required) > 0 {
		logger.Info("Environment overrides applied.", "values", len(res.Keys), "required", len(res.Required))
	}
	return res, nil
}

// Merge folds o into r. Required values of o replace those of r and its keys
// are appended.
func (r *Result) Merge(o *Result) {
	if r.Required == nil {
		r.Required = make(map[string]cty.Value)
	}
	maps.Copy(r.Required, o.Required)
	r.Keys = append(r.Keys, o.Keys...)
}
