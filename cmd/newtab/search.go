package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/logging"
	"github.com/nikbrunner/newtab/internal/navigate"
	"github.com/nikbrunner/newtab/internal/omnibox"
	"github.com/nikbrunner/newtab/internal/search"
)

var (
	searchFolder string
	searchOpen   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Print the results the start page shows for a query",
	Example: `  newtab search gh
  newtab search --folder git
  newtab search --open go generics`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFolder, "folder", "f", "", "restrict bookmarks to a folder")
	searchCmd.Flags().BoolVarP(&searchOpen, "open", "o", false, "open the selected row in the browser")
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("#7aa2f7"))
)

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" && searchFolder == "" {
		return errors.New("a query or --folder is required")
	}

	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	bookmarks := a.bookmarks(ctx)
	if err := unknownFolder(bookmarks, searchFolder); err != nil {
		return err
	}

	resolver := a.resolver()
	v := omnibox.Lookup(ctx, omnibox.LookupParams{
		Bookmarks:   bookmarks,
		History:     a.history(),
		Suggestions: a.suggestions(),
		Folder:      searchFolder,
		Query:       query,
		Logger:      logging.Component(a.logger, "search"),
	})

	if searchOpen {
		dest, ok := selected(v, resolver)
		if !ok {
			return errors.New("nothing to open")
		}
		fmt.Fprintln(cmd.OutOrStdout(), dest.Indicator())
		return navigate.Open(ctx, dest.URL)
	}

	if v.Total() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no results")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), resultTable(v, resolver))
	return nil
}

// selected returns the destination of the row the page would open on enter.
func selected(v omnibox.View, resolver *navigate.Resolver) (navigate.Destination, bool) {
	switch {
	case v.Selected < 0:
		return navigate.Destination{}, false
	case v.IsFallback(v.Selected):
		return resolver.Fallback(v.Query), true
	default:
		return resolver.Resolve(v.Items[v.Selected]), true
	}
}

func resultTable(v omnibox.View, resolver *navigate.Resolver) *table.Table {
	rows := make([][]string, 0, v.Total())
	for i, item := range v.Items {
		dest := resolver.Resolve(item)
		rows = append(rows, []string{strconv.Itoa(i + 1), kind(item), item.Title(), dest.Label, dest.URL})
	}
	if v.HasFallback() {
		fallback := resolver.Fallback(v.Query)
		rows = append(rows, []string{strconv.Itoa(len(v.Items) + 1), "search", "Search for " + v.Query, fallback.Label, fallback.URL})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "KIND", "TITLE", "LABEL", "URL").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == v.Selected:
				return selectedStyle
			default:
				return cellStyle
			}
		})
}

func kind(r search.Result) string {
	switch r := r.(type) {
	case *search.BookmarkResult:
		if r.Exact {
			return "keyword"
		}
		return "bookmark"
	case *search.HistoryResult:
		return "history"
	case *search.SuggestionResult:
		return "suggested"
	default:
		return ""
	}
}
