package postview

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// filter.js (turns tag/sort clicks into view signals) and postview.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
