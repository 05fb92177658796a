// Command postview serves a filtered, sorted view of a post collection
// loaded from a JSON or XML data file. All site branding and the data source
// come from environment variables.
package main

import (
	"log"
	"strings"
	"time"

	"github.com/eringen/postview"
)

func main() {
	cfg := postview.Config{
		Name:        postview.EnvOr("SITE_NAME", "Posts"),
		URL:         strings.TrimSuffix(postview.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: postview.EnvOr("SITE_DESCRIPTION", ""),

		Addr:     postview.EnvOr("ADDR", ":3000"),
		DataFile: postview.MustEnv("DATA_FILE"),

		DatabasePath:     postview.EnvOr("DATABASE_PATH", "data/postview.db"),
		SnapshotFallback: strings.EqualFold(postview.EnvOr("SNAPSHOT_FALLBACK", ""), "true"),

		AdminPassword: postview.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: postview.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(postview.EnvOr("COOKIE_SECURE", ""), "true"),
	}
	if v := postview.EnvOr("FETCH_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid FETCH_TIMEOUT %q: %v", v, err)
		}
		cfg.FetchTimeout = d
	}

	app := postview.New(cfg, siteViews(cfg),
		postview.WithStaticDir(postview.EnvOr("STATIC_DIR", "public")),
	)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
