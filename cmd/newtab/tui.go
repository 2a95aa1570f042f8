package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/logging"
	"github.com/nikbrunner/newtab/internal/loop"
	"github.com/nikbrunner/newtab/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup(logFile)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	el := loop.New()
	app := tui.NewApp(tui.AppParams{
		Bookmarks:    a.bookmarks(ctx),
		History:      a.history(),
		Suggestions:  a.suggestions(),
		Resolver:     a.resolver(),
		Scheduler:    el,
		TopLeft:      a.cfg.Toolbar.TopLeft,
		TopRight:     a.cfg.Toolbar.TopRight,
		Debounce:     a.cfg.Debounce,
		AutoNavigate: a.cfg.AutoNavigate,
		Query:        strings.Join(args, " "),
		Logger:       logging.Component(a.logger, "tui"),
	})

	a.logger.Info().Msg("starting tui")
	return tui.Run(ctx, el, app)
}
