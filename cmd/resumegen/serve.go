package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes résumé storage, template listing, markup preview and PDF download endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("port") {
		a.cfg.Server.Port = servePort
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	srv := server.New(a.cfg, server.Deps{
		Resumes:   a.backends.Resumes,
		Generator: a.gen,
		Logger:    a.logger,
	})
	a.logger.Info("configured",
		zap.String("addr", srv.Addr()),
		zap.String("resumes", string(a.backends.Kind)),
		zap.String("cache", string(a.backends.CacheKind)),
		zap.String("latex", a.cfg.LaTeX.Binary),
	)
	return srv.Start()
}
