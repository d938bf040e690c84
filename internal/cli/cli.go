package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"debugpanels/internal/config"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets the version shown by --version. main passes values
// injected via ldflags.
func SetVersion(v, c string) {
	if v != "" {
		version = v
	}
	commit = c
}

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	return newRootCommand().execute(ctx)
}

// rootCommand pairs the cobra tree with the log file its pre-run opens.
type rootCommand struct {
	cmd     *cobra.Command
	logFile io.WriteCloser
}

// execute runs the tree and closes the log file whether or not the command
// failed. Cobra skips post-run hooks after a RunE error.
func (r *rootCommand) execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.logFile != nil {
		if cerr := r.logFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// newRootCommand builds the debugpanels root command with its subcommands.
func newRootCommand() *rootCommand {
	var (
		verbose    bool
		configPath string
	)
	r := &rootCommand{}

	root := &cobra.Command{
		Use:          "debugpanels",
		Short:        "Corner debug panels for terminal programs",
		Long:         `debugpanels draws named debug panels (logs, meters, links) stacked in the four corners of the terminal.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.Path()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.Log.ParsedLevel()
			if verbose {
				level = log.DebugLevel
			}
			w, err := openLogFile(cfg.Log.File)
			if err != nil {
				return err
			}
			r.logFile = w
			logger := newLogger(w, level)
			logger.Debug("config loaded", "path", configPath, "backend", cfg.State.Backend)

			ctx := withLogger(cmd.Context(), logger)
			ctx = context.WithValue(ctx, configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("debugpanels %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: $"+config.ConfigFileEnv+" or XDG config dir)")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newRunCmd())
	r.cmd = root
	return r
}

// configFromContext returns the configuration loaded by the root command.
func configFromContext(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey).(*config.Config); ok {
		return c
	}
	return config.Default()
}
