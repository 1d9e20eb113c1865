package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/datamodule/internal/app"
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
	flagSet := flag.NewFlagSet("datamodule", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
datamodule - loads data modules and reports the presets they define.

Usage:
  datamodule [options] [DATA_PATH]

Arguments:
  DATA_PATH
    Directory containing the *.rte data modules.

Options:
`)
		flagSet.PrintDefaults()
	}

	dataFlag := flagSet.String("data", "", "Directory containing the *.rte data modules.")
	dFlag := flagSet.String("d", "", "Directory containing the *.rte data modules (shorthand).")
	modulesFlag := flagSet.String("module", "", "Comma-separated modules to load, in order. Empty loads every module.")
	coreFlag := flagSet.String("core", strings.Join(app.DefaultCoreModules, ","), "Comma-separated core modules loaded first when loading every module.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	profileFlag := flagSet.String("profile", "", "Profile module loading. Options: 'cpu' or 'mem'.")
	profilePathFlag := flagSet.String("profile-path", ".", "Directory the profile is written to.")
	dumpFlag := flagSet.Bool("dump", false, "Write each module's properties after loading.")
	skipDepsFlag := flagSet.Bool("skip-deps", false, "Do not report unresolved Require statements.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *dataFlag != "" {
		path = *dataFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Data path determined.", "path", path)

	if path == "" {
		slog.Debug("No data path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DataPath:            path,
		Modules:             splitList(*modulesFlag),
		CoreModules:         splitList(*coreFlag),
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		Profile:             strings.ToLower(*profileFlag),
		ProfilePath:         *profilePathFlag,
		Dump:                *dumpFlag,
		SkipDependencyCheck: *skipDepsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitList splits a comma-separated flag value, dropping empty items. The
// result is never nil so that an explicit empty list stays distinguishable.
func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
