// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpress/internal/catalog"
	"github.com/pdiddy/docpress/internal/container"
	"github.com/pdiddy/docpress/internal/convert"
	"github.com/pdiddy/docpress/internal/docx"
	"github.com/pdiddy/docpress/internal/logging"
	"github.com/pdiddy/docpress/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input-dir]",
	Short: "Convert .docx files into HTML articles and rebuild the index",
	Long: `Convert reads every .docx file in the input folder (content/raw by default),
writes content/articles/<slug>.html for each, extracts embedded images to
assets/articles/<slug>/, and overwrites data/articles.json with one record per
document. Converter warnings are printed as they occur.

The native backend reads the document directly; the pandoc backend runs
pandoc/core in docker or podman.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

// convertFlags maps flag names to configuration keys.
var convertFlags = map[string]string{
	"input-dir":              "input_dir",
	"pattern":                "pattern",
	"html-dir":               "html_dir",
	"image-dir":              "image_dir",
	"index":                  "index_path",
	"index-format":           "index_format",
	"url-prefix":             "url_prefix",
	"backend":                "backend",
	"cover-from-first-image": "cover_from_first_image",
	"continue-on-error":      "continue_on_error",
	"catalog":                "catalog.enabled",
}

func init() {
	f := convertCmd.Flags()
	f.String("input-dir", "", "folder of source documents (default content/raw)")
	f.String("pattern", "", "glob matched inside the input folder (default *.docx)")
	f.String("html-dir", "", "output folder for pages (default content/articles)")
	f.String("image-dir", "", "output folder for images (default assets/articles)")
	f.String("index", "", "article index file (default data/articles.json)")
	f.String("index-format", "", "index format: json or yaml")
	f.String("url-prefix", "", "URL prefix of article pages (default /content/articles)")
	f.String("backend", "", "conversion backend: native or pandoc")
	f.Bool("cover-from-first-image", false, "use each article's first image as its cover")
	f.Bool("continue-on-error", false, "skip documents that fail instead of aborting")
	f.Bool("catalog", false, "sync the index into the SQLite catalog after the run")

	for flag, key := range convertFlags {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("input_dir", args[0])
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	styles, err := docx.ParseStyleMap(cfg.StyleMap)
	if err != nil {
		return err
	}

	conv, err := newBackend(cfg.Backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := convert.NewPipeline(conv, cfg, styles,
		convert.WithLogger(logger),
		convert.WithOutput(cmd.OutOrStdout()),
	)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Catalog.Enabled {
		if err := syncCatalog(ctx, cfg.Catalog.Path, result.Articles); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func newBackend(backend types.ConversionBackend) (convert.Converter, error) {
	if backend != types.BackendPandoc {
		return docx.NewConverter(), nil
	}
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	return convert.NewPandocConverter(rt)
}

func syncCatalog(ctx context.Context, path string, articles []types.Article) error {
	c, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Replace(ctx, articles); err != nil {
		return fmt.Errorf("syncing catalog %s: %w", path, err)
	}
	logger.Info("catalog synced", logging.String("path", path), logging.Int("articles", len(articles)))
	return nil
}
