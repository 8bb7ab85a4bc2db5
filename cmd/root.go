package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fgrehm/codejump/internal/config"
	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/ui"
	"github.com/spf13/cobra"
)

var (
	debugFlag      bool
	configFileFlag string
	logger         *slog.Logger
)

// Version variables injected at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "codejump",
	Short:   "Jump to recent editor workspaces and Remote-SSH hosts",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if debugFlag {
			level = slog.LevelDebug
		}
		logger = newLogger(level)
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config-file", "", "path to config.toml (defaults to $CODEJUMP_HOME/config.toml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf("codejump version %s\n", Version))
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(instancesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command with signal handling.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger = newLogger(slog.LevelWarn)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		u := newUI()
		u.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.TimeValue(t.UTC())
				}
			}
			return a
		},
	}))
}

// newUI creates a UI that writes to stdout and stderr.
func newUI() *ui.UI {
	return ui.New(os.Stdout, os.Stderr)
}

// configPath returns --config-file or the default config location.
func configPath() (string, error) {
	if configFileFlag != "" {
		return configFileFlag, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file, falling back to defaults when missing.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", path, "pins", len(cfg.CustomWorkspaces), "instances", len(cfg.Instances))
	return cfg, nil
}

// newRegistry builds the instance registry from the config, or by probing
// the platform's default data directories when none are configured.
func newRegistry(cfg *config.Config) (*editor.Registry, error) {
	if instances := cfg.EditorInstances(); len(instances) > 0 {
		return editor.NewRegistry(instances), nil
	}
	d, err := editor.NewDetector(runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("detecting editor instances: %w", err)
	}
	instances := d.Detect()
	logger.Debug("detected editor instances", "count", len(instances))
	return editor.NewRegistry(instances), nil
}

// pickInstance returns the instance named by version, or the default one
// when version is empty.
func pickInstance(reg *editor.Registry, version string) (editor.Instance, error) {
	if version == "" {
		inst, ok := reg.Default()
		if !ok {
			return editor.Instance{}, fmt.Errorf("no editor instances found (configure [[instances]] in config.toml)")
		}
		return inst, nil
	}
	inst, ok := reg.Find(editor.Version(strings.ToLower(version)))
	if !ok {
		return editor.Instance{}, fmt.Errorf("no %s instance found", version)
	}
	return inst, nil
}

// versionString returns a formatted version string for display.
// For dev builds, includes commit and build timestamp.
func versionString() string {
	v := "codejump " + Version
	if strings.Contains(Version, "-dev") && Commit != "unknown" {
		v += " (" + Commit
		if Built != "unknown" {
			v += ", " + Built
		}
		v += ")"
	}
	return v
}
