package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/newtab/internal/exporter"
	"github.com/nikbrunner/newtab/internal/importer"
	"github.com/nikbrunner/newtab/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file.html>",
	Short: "Merge a Netscape bookmark file into the bookmarks file",
	Long: `Merge a Netscape bookmark file into the bookmarks file, skipping URLs
that are already present.

The browser places database is read-only, so imports always go to the
bookmarks file. While a places database is found, searches read bookmarks
from it and imported bookmarks are not searched; set firefox_db to a path
that does not exist to search the bookmarks file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write bookmarks as a Netscape bookmark file",
	Long: `Write bookmarks as a Netscape bookmark file. Bookmarks come from the
browser places database when one is found, otherwise from the bookmarks
file. The default path is ~/Downloads/bookmarks-export-YYYY-MM-DD.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

// runImport always writes to the JSON bookmarks file; the places database
// is read-only.
func runImport(cmd *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	jsonStorage := storage.NewJSONStorage(a.cfg.BookmarksFile)
	store, err := jsonStorage.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	bookmarks, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	added, skipped := store.ImportMerge(bookmarks)
	if err := jsonStorage.Save(store); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}

	a.logger.Debug().Str("file", args[0]).Int("added", added).Int("skipped", skipped).Msg("import finished")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d bookmarks into %s", added, jsonStorage.Path())
	if skipped > 0 {
		fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
	}
	fmt.Fprintln(out)

	if st, err := a.storage(); err == nil {
		if _, ok := st.(*storage.PlacesStorage); ok {
			fmt.Fprintf(out, "Note: searches read bookmarks from the places database %s, not %s\n",
				a.cfg.FirefoxDB, jsonStorage.Path())
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.close()

	outputPath := ""
	if len(args) == 1 {
		outputPath = args[0]
	}
	if outputPath == "" {
		if outputPath, err = exporter.DefaultExportPath(); err != nil {
			return err
		}
	}

	st, err := a.storage()
	if err != nil {
		return err
	}
	store, err := st.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(store)), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks, %d folders to %s\n",
		len(store.Bookmarks), len(store.Folders()), outputPath)
	return nil
}
