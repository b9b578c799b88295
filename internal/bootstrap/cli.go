package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	logLevel     string
	settingsPath string
	noBrowser    bool
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd(ctx context.Context, log *zerolog.Logger, opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "neuroctl",
		Short:         "Bootstrap the local persona AI backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Optional settings file (.toml|.yaml|.json) overriding compiled-in defaults")
	root.PersistentFlags().BoolVar(&opts.noBrowser, "no-browser", false, "Do not open a browser after launch")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := zerolog.ParseLevel(opts.logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", opts.logLevel)
		}
		*log = log.Level(lvl)
		return nil
	}

	newPipeline := func() (*Pipeline, error) {
		cfg := DefaultSettings()
		if opts.settingsPath != "" {
			var err error
			cfg, err = LoadSettings(opts.settingsPath)
			if err != nil {
				return nil, fmt.Errorf("loading settings: %w", err)
			}
		}
		if opts.noBrowser {
			cfg.NoBrowser = true
		}
		return New(cfg, *log), nil
	}

	up := &cobra.Command{
		Use:     "up",
		Short:   "Run the full bootstrap pipeline and launch the backend",
		Example: "  neuroctl up\n  neuroctl up --no-browser --settings neuroctl.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Up(ctx)
		},
	}
	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Detect the platform and resolve prerequisites, then stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Doctor(ctx)
		},
	}
	models := &cobra.Command{Use: "models", Short: "Model artifact operations"}
	modelsSync := &cobra.Command{
		Use:   "sync",
		Short: "Ensure the daemon is healthy and pull missing models",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.SyncModels(ctx)
		},
	}
	models.AddCommand(modelsSync)
	configCmd := &cobra.Command{Use: "config", Short: "Persona configuration operations"}
	configInit := &cobra.Command{
		Use:   "init",
		Short: "Materialize the active persona config from the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.InitConfig(ctx)
		},
	}
	configCmd.AddCommand(configInit)

	root.AddCommand(up, doctor, models, configCmd)
	return root
}

// Main is the process entry point behind cmd/neuroctl. It returns the exit
// code: 0 on success, the backend's own code after a launch handoff, 1 for
// any fatal pipeline error.
func Main() int {
	_ = godotenv.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &cliOptions{}
	root := buildRootCmd(ctx, &log, opts)
	// Bare invocation behaves like "up".
	if len(os.Args) < 2 {
		root.SetArgs([]string{"up"})
	}
	if err := root.Execute(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			// The backend ran and exited; pass its status through.
			return exit.ExitCode()
		}
		log.Error().Msg(err.Error())
		return 1
	}
	return 0
}
