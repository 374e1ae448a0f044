package paramfile

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/ctxlog"
	"github.com/specialistvlad/colparams/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// LoadPath loads a single parameter file, or every .hcl, .yaml and .yml file
// below a directory in lexical path order. Values from later files override
// earlier ones.
func LoadPath(ctx context.Context, path string, set *column.Set, strict bool) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !info.IsDir() {
		return Load(ctx, path, set, strict)
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl", ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no parameter files found in %s", path)
	}
	ctxlog.FromContext(ctx).Debug("Parameter directory scanned.", "path", path, "files", len(files))

	merged := &Result{Required: make(map[string]cty.Value)}
	for _, f := range files {
		res, err := Load(ctx, f, set, strict)
		if err != nil {
			return nil, err
		}
		merged.Merge(res)
	}
	return merged, nil
}
