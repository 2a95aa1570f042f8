package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/newtab/internal/loop"
)

// Run drives app on the event loop el, which must be the scheduler the app
// was created with, and blocks until the program exits or ctx is done.
func Run(ctx context.Context, el *loop.EventLoop, app App, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	}, opts...)
	p := tea.NewProgram(app, opts...)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := el.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case msg := <-app.events.ch:
				p.Send(msg)
			case <-app.events.done:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		defer app.events.close()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
