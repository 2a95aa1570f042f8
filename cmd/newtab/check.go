package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/culler"
	"github.com/nikbrunner/newtab/internal/logging"
)

var checkOpts = culler.DefaultOptions()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report bookmarks whose URLs are dead or unreachable",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntVarP(&checkOpts.Concurrency, "concurrency", "c", checkOpts.Concurrency, "parallel requests")
	checkCmd.Flags().DurationVar(&checkOpts.Timeout, "timeout", checkOpts.Timeout, "per request timeout")
	checkCmd.Flags().StringSliceVar(&checkOpts.ExcludeDomains, "exclude", []string{"github.com"}, "domains where 404 means private")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	bookmarks := a.bookmarks(cmd.Context())
	opts := checkOpts
	opts.Logger = logging.Component(a.logger, "check")

	start := time.Now()
	progress := cmd.ErrOrStderr()
	results, err := culler.CheckURLs(cmd.Context(), bookmarks, opts, func(completed, total int) {
		fmt.Fprintf(progress, "\rchecked %d/%d", completed, total)
	})
	if len(bookmarks) > 0 {
		fmt.Fprintln(progress)
	}
	if err != nil {
		return err
	}

	bad := culler.Unhealthy(results)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d bookmarks checked in %s, %d unhealthy\n",
		len(results), time.Since(start).Round(time.Millisecond), len(bad))
	if len(bad) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(bad))
	for _, r := range bad {
		code := ""
		if r.StatusCode != 0 {
			code = strconv.Itoa(r.StatusCode)
		}
		rows = append(rows, []string{r.Status.String(), code, r.Bookmark.Title, r.Bookmark.URL, r.Error})
	}
	fmt.Fprintln(out, table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("STATUS", "CODE", "TITLE", "URL", "REASON").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}))
	return nil
}
