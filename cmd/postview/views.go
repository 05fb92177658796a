package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/postview"
	"github.com/eringen/postview/corpus"
)

// siteViews returns the default templates for the postview binary. Every
// view is a plain templ.ComponentFunc, so the binary needs no template
// codegen step; users who want their own markup pass a different ViewFuncs
// into postview.New.
func siteViews(cfg postview.Config) postview.ViewFuncs {
	return postview.ViewFuncs{
		Home: func(posts []corpus.Post, state corpus.ViewState, tags []string, status postview.Status, siteURL string) templ.Component {
			return page(cfg.Name, func(b *strings.Builder) {
				fmt.Fprintf(b, "<h1>%s</h1>\n", html.EscapeString(cfg.Name))
				writeStatusBanner(b, status)
				writeControls(b, tags, state)
				writePostList(b, posts)
			})
		},
		HomePartial: func(posts []corpus.Post, state corpus.ViewState, tags []string, status postview.Status) templ.Component {
			return component(func(b *strings.Builder) {
				writeStatusBanner(b, status)
				writeControls(b, tags, state)
				writePostList(b, posts)
			})
		},
		PostList: func(posts []corpus.Post, state corpus.ViewState, tags []string) templ.Component {
			return component(func(b *strings.Builder) {
				writePostList(b, posts)
			})
		},
		Post: func(post corpus.Post, siteURL string) templ.Component {
			return page(post.Title, func(b *strings.Builder) {
				writePostCard(b, post, false)
				b.WriteString(`<p><a href="/">&larr; All posts</a></p>` + "\n")
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return page("Admin", func(b *strings.Builder) {
				b.WriteString("<h1>Admin</h1>\n")
				if showError {
					b.WriteString(`<p class="status-banner error">Wrong password.</p>` + "\n")
				}
				fmt.Fprintf(b, `<form method="post" action="/admin/login/">
<input type="hidden" name="_csrf" value="%s">
<input type="password" name="password" autofocus>
<button type="submit">Log in</button>
</form>
`, html.EscapeString(csrfToken))
			})
		},
		AdminDashboard: func(status postview.Status, postCount int, tags []string, history []postview.LoadRecord, message, csrfToken string) templ.Component {
			return page("Dashboard", func(b *strings.Builder) {
				b.WriteString("<h1>Dashboard</h1>\n")
				if message != "" {
					fmt.Fprintf(b, "<p><em>%s</em></p>\n", html.EscapeString(message))
				}
				writeStatusBanner(b, status)
				fmt.Fprintf(b, "<p>%d posts, %d tags.</p>\n", postCount, len(tags))
				fmt.Fprintf(b, `<form method="post" action="/admin/reload/">
<input type="hidden" name="_csrf" value="%s">
<button type="submit">Reload data file</button>
</form>
`, html.EscapeString(csrfToken))
				writeLoadHistory(b, history)
				fmt.Fprintf(b, `<form method="post" action="/admin/logout/">
<input type="hidden" name="_csrf" value="%s">
<button type="submit">Log out</button>
</form>
`, html.EscapeString(csrfToken))
			})
		},
		NotFound: func() templ.Component {
			return page("Not found", func(b *strings.Builder) {
				b.WriteString(`<h1>404</h1><p>Nothing here. <a href="/">Back to the posts</a>.</p>` + "\n")
			})
		},
		ServerError: func() templ.Component {
			return page("Error", func(b *strings.Builder) {
				b.WriteString("<h1>500</h1><p>Something broke on our side.</p>\n")
			})
		},
	}
}

// component wraps a builder function as a templ.Component.
func component(fn func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// page wraps body in the site chrome.
func page(title string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		fmt.Fprintf(b, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/public/postview.css">
</head>
<body>
`, html.EscapeString(title))
		body(b)
		b.WriteString(`<script src="/public/filter.js"></script>
</body>
</html>
`)
	})
}

func writeStatusBanner(b *strings.Builder, status postview.Status) {
	switch {
	case status.State == postview.StateLoading:
		b.WriteString(`<p class="status-banner loading">Loading posts…</p>` + "\n")
	case status.State == postview.StateError:
		fmt.Fprintf(b, `<p class="status-banner error">Could not load posts: %s</p>`+"\n", html.EscapeString(status.Err))
	case status.Stale:
		fmt.Fprintf(b, `<p class="status-banner error">Showing archived posts; the last reload failed: %s</p>`+"\n", html.EscapeString(status.Err))
	}
}

// writeControls renders the tag filter and sort order controls. Each control
// carries a data attribute that filter.js turns into a view signal.
func writeControls(b *strings.Builder, tags []string, state corpus.ViewState) {
	b.WriteString(`<nav class="tagbar">`)
	writeTagLink(b, corpus.TagAll, "All", state.Tag == corpus.TagAll)
	for _, tag := range tags {
		writeTagLink(b, tag, tag, state.Tag == tag)
	}
	b.WriteString("</nav>\n")

	b.WriteString(`<nav class="sortbar">`)
	writeSortLink(b, corpus.SortDateDesc, "Newest first", state.Sort == corpus.SortDateDesc)
	writeSortLink(b, corpus.SortDateAsc, "Oldest first", state.Sort == corpus.SortDateAsc)
	b.WriteString("</nav>\n")
}

func writeTagLink(b *strings.Builder, tag, label string, active bool) {
	class := ""
	if active {
		class = ` class="active"`
	}
	fmt.Fprintf(b, `<a href="/?tag=%s" data-tag="%s"%s>%s</a>`,
		html.EscapeString(tag), html.EscapeString(tag), class, html.EscapeString(label))
}

func writeSortLink(b *strings.Builder, order corpus.SortOrder, label string, active bool) {
	class := ""
	if active {
		class = ` class="active"`
	}
	fmt.Fprintf(b, `<a href="/?sort=%s" data-sort="%s"%s>%s</a>`,
		order, order, class, html.EscapeString(label))
}

func writeLoadHistory(b *strings.Builder, history []postview.LoadRecord) {
	b.WriteString("<h2>Recent loads</h2>\n")
	if len(history) == 0 {
		b.WriteString("<p>No loads recorded yet.</p>\n")
		return
	}
	b.WriteString("<table>\n<tr><th>When</th><th>Source</th><th>Outcome</th><th>Posts</th><th>Took</th><th>Error</th></tr>\n")
	for _, rec := range history {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			rec.At.Format("2006-01-02 15:04:05"),
			html.EscapeString(rec.Source),
			html.EscapeString(rec.Outcome),
			rec.Posts,
			rec.Duration,
			html.EscapeString(rec.Error))
	}
	b.WriteString("</table>\n")
}

func writePostList(b *strings.Builder, posts []corpus.Post) {
	b.WriteString(`<section id="posts">` + "\n")
	if len(posts) == 0 {
		b.WriteString(`<p class="empty-state">No posts to show.</p>` + "\n")
	}
	for _, p := range posts {
		writePostCard(b, p, true)
	}
	b.WriteString("</section>\n")
}

func writePostCard(b *strings.Builder, p corpus.Post, linkTitle bool) {
	b.WriteString(`<article class="post-card">` + "\n")
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	if linkTitle {
		fmt.Fprintf(b, `<h2><a href="/post/%s/">%s</a></h2>`+"\n", p.Slug, html.EscapeString(title))
	} else {
		fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(title))
	}
	if p.Date.Raw != "" {
		fmt.Fprintf(b, "<time>%s</time>\n", html.EscapeString(p.Date.Format("January 2, 2006")))
	}
	if p.Image != nil && p.Image.Src != "" {
		fmt.Fprintf(b, `<img src="%s" alt="%s" loading="lazy">`+"\n",
			html.EscapeString(p.Image.Src), html.EscapeString(p.Image.Alt))
	}
	if p.Content != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(p.Content))
	}
	if len(p.Tags) > 0 {
		b.WriteString(`<nav class="tagbar">`)
		for _, tag := range p.Tags {
			writeTagLink(b, tag, tag, false)
		}
		b.WriteString("</nav>\n")
	}
	b.WriteString("</article>\n")
}
