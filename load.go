package postview

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/eringen/postview/corpus"
)

// ErrLoadInFlight is returned by Load when another load has not finished
// yet. Concurrent loads are rejected rather than superseded, so an in-flight
// fetch is never cancelled out from under the renderer.
var ErrLoadInFlight = errors.New("postview: a load is already in flight")

// loadGate serializes loads without holding the library lock across the
// fetch suspension point.
type loadGate struct {
	mu     sync.Mutex
	active bool
}

func (g *loadGate) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active {
		return false
	}
	g.active = true
	return true
}

func (g *loadGate) end() {
	g.mu.Lock()
	g.active = false
	g.mu.Unlock()
}

// Load runs the full load sequence: detect format, fetch, parse, publish
// corpus and tag index, and record the attempt in the audit log. Every error
// is terminal for the attempt; the corpus is all-or-nothing. While a load
// is running, further calls return ErrLoadInFlight.
func (a *App) Load(ctx context.Context) error {
	if !a.gate.begin() {
		return ErrLoadInFlight
	}
	defer a.gate.end()

	a.Library.SetLoading()
	started := time.Now()

	posts, err := a.loadCorpus(ctx)
	if err != nil {
		a.Library.SetError(err)
		a.record(started, err, 0)
		if a.Config.SnapshotFallback && a.Store != nil {
			if snap, serr := a.Store.LoadSnapshot(); serr == nil && len(snap) > 0 {
				a.Library.SetStaleCorpus(snap, err)
			}
		}
		return err
	}

	a.Library.SetCorpus(posts)
	a.record(started, nil, len(posts))
	if a.Store != nil {
		if err := a.Store.SaveSnapshot(posts); err != nil {
			log.Printf("postview: archive corpus: %v", err)
		}
	}
	return nil
}

// loadCorpus is the pure sequencing part of a load: format detection runs
// first so an unsupported extension is reported without a wasted fetch.
func (a *App) loadCorpus(ctx context.Context) ([]corpus.Post, error) {
	format, err := corpus.DetectFormat(a.Config.DataFile)
	if err != nil {
		return nil, err
	}
	data, err := a.fetcher.Fetch(ctx, a.Config.DataFile)
	if err != nil {
		return nil, err
	}
	return corpus.Parse(data, format)
}

func (a *App) record(started time.Time, loadErr error, posts int) {
	if a.Store == nil {
		return
	}
	rec := LoadRecord{
		At:       started,
		Source:   a.Config.DataFile,
		Outcome:  classifyOutcome(loadErr),
		Posts:    posts,
		Duration: time.Since(started),
	}
	if loadErr != nil {
		rec.Error = loadErr.Error()
	}
	if err := a.Store.RecordLoad(rec); err != nil {
		log.Printf("postview: record load: %v", err)
	}
}

// classifyOutcome buckets a load error into the audit log's error taxonomy.
func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, corpus.ErrUnsupportedFormat):
		return "format"
	case errors.Is(err, corpus.ErrMalformedInput):
		return "malformed"
	}
	return "transport"
}
