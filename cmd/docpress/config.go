// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/docpress/pkg/types"
)

// configureViper registers every setting's default and the DOCPRESS_
// environment mapping (catalog.path reads DOCPRESS_CATALOG_PATH).
func configureViper(v *viper.Viper) {
	d := types.DefaultPressConfig()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("pattern", d.Pattern)
	v.SetDefault("html_dir", d.HTMLDir)
	v.SetDefault("image_dir", d.ImageDir)
	v.SetDefault("index_path", d.IndexPath)
	v.SetDefault("index_format", string(d.IndexFormat))
	v.SetDefault("url_prefix", d.URLPrefix)
	v.SetDefault("lang", d.Lang)
	v.SetDefault("article_class", d.ArticleClass)
	v.SetDefault("excerpt_length", d.ExcerptLength)
	v.SetDefault("style_map", d.StyleMap)
	v.SetDefault("backend", string(d.Backend))
	v.SetDefault("cover_from_first_image", d.CoverFromFirstImage)
	v.SetDefault("continue_on_error", d.ContinueOnError)
	v.SetDefault("catalog.enabled", d.Catalog.Enabled)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)

	v.SetEnvPrefix("DOCPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes and validates the merged settings.
func loadConfig(v *viper.Viper) (types.PressConfig, error) {
	var cfg types.PressConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.PressConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.PressConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
