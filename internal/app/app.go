package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"sync"

	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/ctxlog"
	"github.com/specialistvlad/colparams/internal/paramfile"
	"github.com/zclconf/go-cty/cty"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	environ func() []string

	// mu guards params and required, which are replaced as a whole on reload.
	mu       sync.RWMutex
	params   *column.Set
	required map[string]cty.Value

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Reports are written to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	return &App{
		outW:    outW,
		logger:  newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config:  cfg,
		environ: os.Environ,
	}
}

// Run resolves the parameters and then writes a template, serves the
// listing, or prints a report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	set, required, err := a.resolve(ctx)
	if err != nil {
		return err
	}
	a.swap(set, required)

	switch {
	case a.config.Template:
		a.logger.Debug("Writing parameter template.")
		return paramfile.WriteTemplate(a.outW, set)
	case a.config.HTTPPort > 0:
		return a.serve(ctx)
	default:
		return a.writeReport()
	}
}

// resolve builds fresh holders and applies, in order, the parameter file,
// the env file and the process environment.
func (a *App) resolve(ctx context.Context) (*column.Set, map[string]cty.Value, error) {
	set, err := column.NewSet(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize parameters: %w", err)
	}
	res := &paramfile.Result{Required: make(map[string]cty.Value)}

	if a.config.ParamsPath != "" {
		fileRes, err := paramfile.LoadPath(ctx, a.config.ParamsPath, set, a.config.Strict)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load parameters: %w", err)
		}
		res.Merge(fileRes)
	}

	vars := make(map[string]string)
	if a.config.EnvFile != "" {
		fileVars, err := paramfile.ReadEnvFile(a.config.EnvFile)
		if err != nil {
			return nil, nil, err
		}
		maps.Copy(vars, fileVars)
	}
	maps.Copy(vars, paramfile.EnvMap(a.environ()))

	envRes, err := paramfile.LoadEnv(ctx, vars, set, a.config.Strict)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	res.Merge(envRes)

	return set, res.Required, nil
}

func (a *App) swap(set *column.Set, required map[string]cty.Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params = set
	a.required = required
}

func (a *App) snapshot() (*column.Set, map[string]cty.Value) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.params, a.required
}

// Params returns the parameter holders currently in use. This is primarily for testing.
func (a *App) Params() *column.Set {
	set, _ := a.snapshot()
	return set
}
