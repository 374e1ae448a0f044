package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/specialistvlad/colparams/internal/column"
	"github.com/specialistvlad/colparams/internal/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleParams = `
required {
  FeedQuality = 1
  ProblemType = "min-cost"
}

solver {
  Seed      = 42
  Tolerance = 1e-8
}

cost {
  MaxTrays   = "150"
  BaseHeight = "not a number"
}
`

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	config, err := NewConfig(cfg)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	a := NewApp(out, logs, config)
	a.environ = func() []string { return nil }
	return a, out, logs
}

type jsonReport struct {
	Required   map[string]any `json:"required"`
	Parameters []struct {
		Key      string `json:"key"`
		Label    string `json:"label"`
		Default  any    `json:"default"`
		Nullable bool   `json:"nullable"`
		Kind     string `json:"kind"`
		Value    any    `json:"value"`
	} `json:"parameters"`
}

func TestRun_ListsDefaults(t *testing.T) {
	a, out, _ := newTestApp(t, Config{LogLevel: "info", LogFormat: "text"})

	require.NoError(t, a.Run(context.Background()))

	text := out.String()
	assert.Regexp(t, regexp.MustCompile(`(?m)^KEY\s+VALUE\s+DESCRIPTION$`), text)
	assert.Regexp(t, regexp.MustCompile(`(?m)^FeedQuality\s+-\s+required$`), text)
	assert.Regexp(t, regexp.MustCompile(`(?m)^MaxTrays\s+200\s+Maximum number of trays in a column \(default 200\)$`), text)
	assert.Regexp(t, regexp.MustCompile(`(?m)^Seed\s+-\s+`), text)
	assert.Regexp(t, regexp.MustCompile(`(?m)^Tolerance\s+1e-06\s+`), text)
}

func TestRun_ResolvesParameterFile(t *testing.T) {
	a, out, logs := newTestApp(t, Config{
		ParamsPath: writeParams(t, sampleParams),
		Output:     "json",
		LogLevel:   "info",
		LogFormat:  "json",
	})

	require.NoError(t, a.Run(context.Background()))

	// The unconvertible BaseHeight is skipped in non-strict mode.
	assert.Equal(t, 150, a.Params().Cost.MaxTrays)
	assert.Equal(t, 4.0, a.Params().Cost.BaseHeight)
	assert.Contains(t, logs.String(), "Parameter value ignored.")

	var rep jsonReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, map[string]any{"FeedQuality": 1.0, "ProblemType": "min-cost"}, rep.Required)

	require.Len(t, rep.Parameters, len(column.UserInterfaceDescriptors()))
	values := make(map[string]any)
	for i, p := range rep.Parameters {
		assert.Equal(t, column.UserInterfaceKeys()[i], p.Key)
		values[p.Key] = p.Value
	}
	assert.Equal(t, 150.0, values["MaxTrays"])
	assert.Equal(t, 42.0, values["Seed"])
	assert.Equal(t, 1e-8, values["Tolerance"])
	assert.Nil(t, values["TimeLimit"])
}

func TestRun_StrictFailsOnConversion(t *testing.T) {
	a, _, _ := newTestApp(t, Config{
		ParamsPath: writeParams(t, sampleParams),
		Strict:     true,
		LogLevel:   "info",
		LogFormat:  "text",
	})

	err := a.Run(context.Background())

	require.Error(t, err)
	require.ErrorIs(t, err, param.ErrConversion)
	assert.Contains(t, err.Error(), "failed to load parameters")
	assert.Contains(t, err.Error(), "BaseHeight")
}

func TestRun_MissingFile(t *testing.T) {
	a, _, _ := newTestApp(t, Config{
		ParamsPath: filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel:   "info",
		LogFormat:  "text",
	})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load parameters")
}

func TestRun_Template(t *testing.T) {
	a, out, _ := newTestApp(t, Config{Template: true, LogLevel: "info", LogFormat: "text"})

	require.NoError(t, a.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "required {")
	assert.Contains(t, text, "solver {")
	assert.Contains(t, text, "cost {")
	assert.NotContains(t, text, "KEY")
}

func TestRun_DebugLogging(t *testing.T) {
	a, _, logs := newTestApp(t, Config{LogLevel: "debug", LogFormat: "text"})

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, logs.String(), "App.Run method started.")
}

func TestRun_EnvironmentOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "params.env")
	require.NoError(t, os.WriteFile(envFile, []byte("COLPARAMS_MaxTrays=90\nCOLPARAMS_OpYrs=5\n"), 0600))
	a, out, _ := newTestApp(t, Config{
		ParamsPath: writeParams(t, sampleParams),
		EnvFile:    envFile,
		Output:     "json",
		LogLevel:   "info",
		LogFormat:  "text",
	})
	a.environ = func() []string {
		return []string{"PATH=/bin", "COLPARAMS_OpYrs=7", "COLPARAMS_ProblemType=max-profit"}
	}

	require.NoError(t, a.Run(context.Background()))

	// The file sets MaxTrays to 150, the env file overrides it, and the
	// process environment overrides the env file.
	assert.Equal(t, 90, a.Params().Cost.MaxTrays)
	assert.Equal(t, 7.0, a.Params().Cost.OpYrs)

	var rep jsonReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "max-profit", rep.Required["ProblemType"])
	assert.Equal(t, 1.0, rep.Required["FeedQuality"])
}

func TestRun_EnvironmentUnknownKey(t *testing.T) {
	a, _, _ := newTestApp(t, Config{LogLevel: "info", LogFormat: "text"})
	a.environ = func() []string { return []string{"COLPARAMS_Trays=3"} }

	err := a.Run(context.Background())

	require.ErrorIs(t, err, param.ErrFieldNotFound)
	assert.Contains(t, err.Error(), "failed to apply environment overrides")
}
