// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpress/internal/catalog"
	"github.com/pdiddy/docpress/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search converted articles by title and excerpt",
	Long: `Search runs a full-text query against the article catalog written by
"docpress convert --catalog". Query syntax is SQLite FTS5: words, "phrases",
prefix*, AND/OR/NOT.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path := viper.GetString("catalog.path")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("catalog %s not found: run docpress convert --catalog first", path)
	}

	c, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := c.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []types.Article, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []types.Article{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-40s  %s\n", "Rank", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, a := range results {
		title := a.Title
		if r := []rune(title); len(r) > 40 {
			title = string(r[:37]) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-40s  %s\n", i+1, title, a.URL)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}
