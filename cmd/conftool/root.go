package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyconferences/conftool/pkg/cli"
	"github.com/pyconferences/conftool/pkg/config"
	"github.com/pyconferences/conftool/pkg/dataset/lint"
	"github.com/pyconferences/conftool/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	logLevel string
	dataDir  string
)

var rootCmd = &cobra.Command{
	Use:   "conftool",
	Short: "Validate and maintain the Python conference dataset",
	Long: `Conftool validates the Python conference data files and keeps them tidy.

Every row of every data file is checked against the column rules, and every
problem is reported in one pass. Companion commands normalize the files,
rebuild the aggregate, split it back into per-year files and export the
website feeds.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil && !cli.IsSilent(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: conftool.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (log level info)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "data directory (overrides data.dir)")
}

// env is what every command needs: the loaded configuration and a logger.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

// setup loads the configuration, applies the global flags and builds the logger.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}

	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "info"
	}
	if logLevel != "" {
		if !logging.ValidLevel(logLevel) {
			return nil, cli.NewConfigError("log-level", fmt.Sprintf("invalid log level %q", logLevel))
		}
		level = logLevel
	}

	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	logger.Debug("Configuration loaded",
		"config", cfgFile,
		"dir", cfg.Data.Dir,
		"pattern", cfg.Data.Pattern,
	)
	return &env{cfg: cfg, logger: logger}, nil
}

// dataFiles returns args when given, otherwise the data files of the configured
// directory. skip names files to leave out of discovery in addition to
// data.exclude.
func (e *env) dataFiles(args []string, skip ...string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	exclude := append(append([]string(nil), e.cfg.Data.Exclude...), skip...)
	paths, err := lint.Discover(e.cfg.Data.Dir, e.cfg.Data.Pattern, exclude)
	if err != nil {
		return nil, cli.NewCommandError("discover", err)
	}
	if len(paths) == 0 {
		return nil, cli.NewCommandError("discover",
			fmt.Errorf("no files matching %q in %s", e.cfg.Data.Pattern, e.cfg.Data.Dir))
	}
	return paths, nil
}

func commandContext(cmd *cobra.Command, name string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCommand(ctx, name)
}
