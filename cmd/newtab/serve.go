package main

import (
	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/logging"
	"github.com/nikbrunner/newtab/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the start page and its JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen address (default from config, :42069)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.storage()
	if err != nil {
		return err
	}

	addr := a.cfg.Port
	if servePort != "" {
		addr = servePort
	}

	srv := server.New(server.Params{
		Storage:     store,
		History:     a.history(),
		Suggestions: a.suggestions(),
		Resolver:    a.resolver(),
		StaticDir:   a.cfg.StaticDir,
		Logger:      logging.Component(a.logger, "server"),
	})
	return srv.ListenAndServe(cmd.Context(), addr)
}
