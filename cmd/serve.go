package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = rt.cfg.ServerAddress
		}
		gin.SetMode(rt.cfg.GinMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router := api.NewRouter(api.NewHandler(rt.engine, rt.log), rt.log)
		return api.Serve(ctx, addr, router, rt.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SKILLPULSE_ADDR)")
}
