package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adisonshadow/adb/internal/web/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry over HTTP",
		Long: `Load the definitions directory and serve it as a read-only JSON API.

Routes:
  GET /healthz
  GET /api/types
  GET /api/entities
  GET /api/entities/{code}
  GET /api/enums
  GET /api/enums/{id}
  GET /api/enums/{id}/validate
  GET /api/tools

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve on the configured address
  adb serve

  # Serve on another port
  adb serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			set, err := opts.loadDefinitions(cfg)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			handler := server.NewHandler(server.Source{
				Registry: set.Registry,
				Enums:    set.Cache,
				Logger:   logger,
			})

			srvCfg := server.DefaultConfig(handler)
			srvCfg.Address = cfg.Server.Addr
			srvCfg.ReadTimeout = cfg.Server.ReadTimeout
			srvCfg.WriteTimeout = cfg.Server.WriteTimeout
			srvCfg.Logger = logger

			srv, err := server.New(srvCfg)
			if err != nil {
				return err
			}

			logger.Info("definitions loaded",
				zap.String("dir", cfg.Definitions.Dir),
				zap.Int("entities", len(set.Entities)),
				zap.Int("enums", len(set.Enums)),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}
