package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/colparams/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("colparams", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
colparams - Parameter registry for distillation column design.

Usage:
  colparams [options] [PARAMS_FILE]

Arguments:
  PARAMS_FILE
    Optional .hcl, .yaml or .yml file with required, solver and cost sections.
    A directory loads every such file below it in lexical order.
    Without it the parameters are listed with their defaults.

Environment:
  COLPARAMS_<Key>
    Overrides a parameter, e.g. COLPARAMS_MaxTrays=150. Applied after the
    parameter file and the -env-file.

Options:
`)
		flagSet.PrintDefaults()
	}

	paramsFlag := flagSet.String("params", "", "Path to the parameter file.")
	pFlag := flagSet.String("p", "", "Path to the parameter file (shorthand).")
	strictFlag := flagSet.Bool("strict", false, "Fail on values that cannot be converted instead of skipping them.")
	outputFlag := flagSet.String("output", "text", "Report format. Options: 'text' or 'json'.")
	templateFlag := flagSet.Bool("template", false, "Write an HCL parameter template with all defaults and exit.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the HTTP parameter listing server. 0 is disabled.")
	watchFlag := flagSet.Bool("watch", false, "Reload the parameter file on change while serving.")
	envFileFlag := flagSet.String("env-file", "", "Dotenv file with COLPARAMS_<Key> overrides. Missing files are ignored.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *paramsFlag != "" {
		path = *paramsFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "only one parameter file may be given"}
	}
	slog.Debug("Parameter file determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ParamsPath: path,
		Strict:     *strictFlag,
		Output:     strings.ToLower(*outputFlag),
		Template:   *templateFlag,
		HTTPPort:   *httpPortFlag,
		Watch:      *watchFlag,
		EnvFile:    *envFileFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
