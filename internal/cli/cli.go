// Package cli implements the bizhub command-line interface.
//
// This package provides commands for running the page save API, saving and
// loading page documents through the persistence gateway, and building a
// page interactively in the terminal. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the HTTP save API
//   - save: Submit a page document through the persistence gateway
//   - load: Print a user's mirrored page as JSON
//   - show: Render a user's mirrored page as a terminal preview
//   - builder: Build a page interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so every command has one available.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Firecargit/BizHub-saas/internal/config"
	"github.com/Firecargit/BizHub-saas/pkg/buildinfo"
	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/gateway"
	"github.com/Firecargit/BizHub-saas/pkg/mirror"
	"github.com/Firecargit/BizHub-saas/pkg/page"
	"github.com/Firecargit/BizHub-saas/pkg/session"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bizhub",
		Short:        "BizHub builds and persists drag-and-drop web pages",
		Long:         `BizHub is the page-builder engine of the BizHub platform: it manages the canvas of placed widgets, resolves reorder gestures, and persists page layouts to the save API and a durable local mirror.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.builderCommand())

	return root
}

// loadConfig reads the configured TOML file (or defaults).
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newMirror builds the mirror backend selected by the config.
func newMirror(ctx context.Context, cfg config.Mirror) (mirror.Mirror, error) {
	switch cfg.Backend {
	case "", "file":
		return mirror.NewFileMirror(cfg.Dir)
	case "redis":
		return mirror.NewRedisMirror(ctx, mirror.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "memory":
		return mirror.NewMemoryMirror(), nil
	case "null":
		return mirror.NewNullMirror(), nil
	}
	return nil, invalidBackendError("mirror", cfg.Backend)
}

// newGateway builds the persistence gateway from the config.
func newGateway(ctx context.Context, cfg config.Config) (*gateway.Gateway, error) {
	m, err := newMirror(ctx, cfg.Mirror)
	if err != nil {
		return nil, err
	}
	return gateway.New(cfg.Endpoint.URL, m, gateway.Options{
		Timeout:       secondsOrDefault(cfg.Endpoint.TimeoutSeconds),
		RetryAttempts: cfg.Endpoint.RetryAttempts,
	}), nil
}

// loadMirrored reads a user's mirrored page. A corrupt mirror entry loads
// as an empty page with a warning; the session still starts.
func loadMirrored(ctx context.Context, gw *gateway.Gateway, sess *session.Session) ([]page.Element, error) {
	elements, err := gw.Load(ctx, sess)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeLoadCorrupt) {
			return nil, err
		}
		loggerFromContext(ctx).Warn("mirrored page is corrupt, starting from an empty page",
			"user", sess.UserID, "err", err)
		return nil, nil
	}
	return elements, nil
}

// sessionFor resolves the session a command acts as: the --user flag value
// when given, otherwise the fixed local user.
func sessionFor(userID string) *session.Session {
	if userID == "" {
		return session.Local()
	}
	return session.For(userID)
}

// secondsOrDefault converts a config duration in seconds, zero meaning
// "use the gateway default".
func secondsOrDefault(s int) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}

func invalidBackendError(kind, backend string) error {
	return errors.New(errors.ErrCodeInvalidInput, "unknown %s backend: %q", kind, backend)
}
