package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ParamsPath string // .hcl or .yaml parameter file, optional
	Strict     bool   // fail on values that do not convert
	Output     string // text | json
	Template   bool   // write an HCL template instead of a report
	HTTPPort   int    // 0 disables the listing server
	Watch      bool   // reload ParamsPath on change while serving
	EnvFile    string // dotenv file with COLPARAMS_ overrides, optional

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Output {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'json'", cfg.Output)
	}
	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http-port %d", cfg.HTTPPort)
	}
	if cfg.Template && cfg.HTTPPort > 0 {
		return nil, fmt.Errorf("template and http-port cannot be combined")
	}
	if cfg.Watch && (cfg.HTTPPort == 0 || cfg.ParamsPath == "") {
		return nil, fmt.Errorf("watch requires http-port and a parameter file")
	}
	return &cfg, nil
}
