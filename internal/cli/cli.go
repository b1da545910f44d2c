// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/taxchat-tui/internal/config"
	"github.com/jeranaias/taxchat-tui/internal/logging"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// errReported marks a failure that was already printed for the user.
var errReported = errors.New("reported")

// Options holds the global flags.
type Options struct {
	BackendURL string
	ConfigPath string
	Debug      bool
}

// env is the state shared by all commands once the config is loaded.
type env struct {
	opts   Options
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
}

// configPath returns the file config commands read and write.
func (e *env) configPath() (string, error) {
	if e.opts.ConfigPath != "" {
		return e.opts.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// backendURL applies the --backend-url flag over the loaded config.
func (e *env) backendURL() string {
	if e.opts.BackendURL != "" {
		return e.opts.BackendURL
	}
	return e.cfg.Backend.URL
}

// userAgent returns the configured User-Agent, or taxchat/<version>.
func (e *env) userAgent() string {
	if e.cfg.Backend.UserAgent != "" {
		return e.cfg.Backend.UserAgent
	}
	return "taxchat/" + Version
}

func (e *env) client() *taxapi.Client {
	logger := e.log
	return taxapi.NewClientWithConfig(&taxapi.ClientConfig{
		BaseURL:   e.backendURL(),
		UserAgent: e.userAgent(),
		Logger:    &logger,
	})
}

// load reads the config, applies the flags and opens the log.
func (e *env) load(stderr io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if e.opts.ConfigPath != "" {
		cfg, err = config.LoadFromPath(e.opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if cfg == nil {
		return err
	}
	if err != nil {
		fmt.Fprintln(stderr, styles.RenderWarning(err.Error()+" (using defaults)"))
	}

	if e.opts.BackendURL != "" {
		if err := config.ValidateBackendURL(e.opts.BackendURL); err != nil {
			return fmt.Errorf("--backend-url: %w", err)
		}
	}

	e.cfg = cfg
	config.SetGlobal(cfg)

	logPath, err := cfg.LogPath()
	if err != nil {
		logPath = ""
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level: cfg.Log.Level,
		File:  logPath,
		Debug: e.opts.Debug,
	})
	if err != nil {
		fmt.Fprintln(stderr, styles.RenderWarning(err.Error()))
	}
	e.log = logger
	e.closer = closer
	e.log.Debug().Str("backend", e.backendURL()).Str("version", Version).Msg("starting")
	return nil
}

func (e *env) close() {
	if e.closer != nil {
		_ = e.closer.Close()
		e.closer = nil
	}
}

// signalContext is canceled on the first interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "taxchat",
		Short:         "Terminal chat and quick calculator for Indian income tax",
		Long:          "taxchat talks to an income-tax assistant backend. Without a subcommand it opens the full-screen chat with the quick tax estimate panel.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, e)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.opts.BackendURL, "backend-url", "", "backend base URL (overrides config and TAXCHAT_BACKEND_URL)")
	flags.StringVar(&e.opts.ConfigPath, "config", "", "config file path (default ~/.taxchat/config.toml)")
	flags.BoolVar(&e.opts.Debug, "debug", false, "write debug events to the log file")

	root.AddCommand(
		newAskCommand(e),
		newCalcCommand(e),
		newChatCommand(e),
		newConfigCommand(e),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, styles.RenderError(err.Error()))
	}
	return 1
}
