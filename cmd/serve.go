package cmd

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/server"
)

// NewCmdServe creates the serve command.
func NewCmdServe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar and timeline over HTTP",
		Long: `Starts the JSON API used by web front ends:

  GET  /api/github/contributions?username=<u>[&lang=][&theme=]
  POST /api/github/activity            {"username": "<u>", "page": 1}
  GET  /api/github/timeline?username=<u>[&page=][&lang=]
  GET  /api/preferences
  PUT  /api/preferences/:key           {"value": "..."}
  GET  /healthz
  GET  /metrics

Stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer e.close()

	gin.DefaultWriter = log.Writer()
	if !log.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	srvOpts := []server.Option{
		server.WithDefaults(e.defaults),
		server.WithLayout(e.layout),
		server.WithLocation(time.Local),
	}
	if e.store != nil {
		srvOpts = append(srvOpts, server.WithPreferences(e.store))
	}
	srv := server.New(e.portfolio, srvOpts...)

	addr := opts.Addr
	if addr == "" {
		addr = e.cfg.GetServerAddress()
	}
	log.Info("serving", "addr", addr, "authenticated", e.client.Authenticated())
	return srv.Run(ctx, addr)
}
