package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Firecargit/BizHub-saas/internal/config"
	"github.com/Firecargit/BizHub-saas/internal/server"
)

// serveCommand runs the HTTP save API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the page save API",
		Long:  `Serve the HTTP API the persistence gateway submits page documents to: POST /api/save-page and GET /api/page/{userID}.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, cleanup, err := newDocStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("starting save API", "addr", cfg.Server.Addr, "store", storeBackend(cfg.Store))
			srv := server.New(store, logger, server.Options{ThrottleLimit: cfg.Server.ThrottleLimit})
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// newDocStore builds the document store selected by the config. The cleanup
// function releases backend connections and is safe to call always.
func newDocStore(ctx context.Context, cfg config.Store) (server.DocStore, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		return server.NewMemoryStore(), func() {}, nil
	case "mongo":
		store, err := server.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() { _ = store.Close(context.Background()) }, nil
	}
	return nil, func() {}, invalidBackendError("store", cfg.Backend)
}

func storeBackend(cfg config.Store) string {
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}
