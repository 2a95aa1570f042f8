package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/omnibox"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List bookmark folders grouped as on the toolbar",
	Args:  cobra.NoArgs,
	RunE:  runFolders,
}

func runFolders(cmd *cobra.Command, _ []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	folders := model.FolderSet(a.bookmarks(cmd.Context()))
	tb := omnibox.GroupFolders(folders, a.cfg.Toolbar.TopLeft, a.cfg.Toolbar.TopRight)

	out := cmd.OutOrStdout()
	for _, group := range []struct {
		name    string
		folders []string
	}{
		{"top-left", tb.TopLeft},
		{"top-right", tb.TopRight},
		{"bottom", tb.Bottom},
	} {
		fmt.Fprintf(out, "%-10s %s\n", group.name+":", strings.Join(group.folders, " "))
	}
	return nil
}
