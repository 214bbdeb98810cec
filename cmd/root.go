package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mj1618/visible/internal/config"
	"github.com/mj1618/visible/internal/output"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/version"
	"github.com/spf13/cobra"
)

// cfg is the loaded configuration, with flags applied, set by the root
// command before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "visible",
	Short: "Tell whether page elements are visible",
	Long: `Tell whether elements of a rendered page are visible.

An element is visible when it has a non-zero width or height and carries no
literal display="none" attribute. Targets are page URLs (opened in a headless
Chromium) or YAML page snapshots written by "visible capture".`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	pf := rootCmd.PersistentFlags()
	pf.String("format", "", "Output format: yaml, json (default from config, else yaml)")
	pf.Bool("pretty", false, "Pretty-print JSON")
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/visible/config.yaml)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.String("backend", "", "Force a backend: chrome, snapshot (default: chosen from the target)")
	pf.String("remote-url", "", "DevTools websocket URL of a running browser")
	pf.String("browser-bin", "", "Browser binary to launch")
	pf.Bool("headful", false, "Show the browser window")
	pf.Bool("stealth", false, "Open pages in stealth mode")
	pf.String("viewport", "", "Browser viewport as WIDTHxHEIGHT (default from config, else "+config.DefaultViewport+")")
	pf.Duration("timeout", 0, "Navigation timeout (default from config, else 30s)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := pf.GetBool("verbose")
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := newLogger(os.Stderr, level)
		cmd.SetContext(withLogger(cmdContext(cmd), logger))

		path, _ := pf.GetString("config")
		loaded, used, err := config.Load(path)
		if err != nil {
			return err
		}
		if used != "" {
			logger.Debug("loaded config", "path", used)
		}
		if err := applyFlags(cmd, &loaded); err != nil {
			return err
		}
		cfg = loaded

		format := cfg.Format
		if f, _ := pf.GetString("format"); f != "" {
			format = f
		}
		if format == "" {
			format = string(output.FormatYAML)
		}
		output.OutputFormat, err = output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.PrettyOutput, _ = pf.GetBool("pretty")
		return nil
	}
}

// applyFlags overlays explicitly set persistent flags onto c.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("remote-url") {
		c.Browser.RemoteURL, _ = flags.GetString("remote-url")
	}
	if flags.Changed("browser-bin") {
		c.Browser.Bin, _ = flags.GetString("browser-bin")
	}
	if flags.Changed("headful") {
		headful, _ := flags.GetBool("headful")
		c.Browser.Headless = !headful
	}
	if flags.Changed("stealth") {
		c.Browser.Stealth, _ = flags.GetBool("stealth")
	}
	if flags.Changed("viewport") {
		c.Browser.Viewport, _ = flags.GetString("viewport")
	}
	if flags.Changed("timeout") {
		c.Browser.NavigateTimeout, _ = flags.GetDuration("timeout")
	}
	return c.Validate()
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openSession opens target with the configured backend options.
func openSession(cmd *cobra.Command, target string) (platform.Session, error) {
	backend, _ := cmd.Flags().GetString("backend")
	return openTarget(cmdContext(cmd), backend, target)
}

func openTarget(ctx context.Context, backend, target string) (platform.Session, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	opts := cfg.OpenOptions()
	opts.Backend = backend
	opts.Logger = loggerFromContext(ctx)
	return provider.Open(ctx, target, opts)
}
