package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fulcrumgenomics/ref-solver/internal/httpapi"
	"github.com/fulcrumgenomics/ref-solver/internal/logging"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to the config file's server.port, or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP identification API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cat, cfg, err := loadCatalogAndConfig()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}
	if port == 0 {
		port = 8080
	}

	logger := logging.Configure(logging.Options{Debug: debug, JSON: true})
	server := httpapi.New(cat, cfg.MatchingConfig(), logger)

	addr := fmt.Sprintf(":%d", port)
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, server.Router)
}
