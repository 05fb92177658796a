package postview

import (
	"sync"

	"github.com/eringen/postview/corpus"
)

// LoadState is the coarse phase of the load lifecycle.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Status is the load lifecycle surface exposed to the render collaborator.
type Status struct {
	State LoadState
	Err   string // underlying cause when State is StateError, or when Stale
	Stale bool   // serving an archived corpus after a failed load
}

// Library owns the loaded corpus and the user-selected view state, and is
// the only place either changes. The corpus is immutable once set; reads
// recompute the display list from scratch via corpus.ComputeView, so the
// view can never drift from (corpus, state).
type Library struct {
	mu       sync.RWMutex
	posts    []corpus.Post
	tags     []string
	state    corpus.ViewState
	status   Status
	onStatus func(Status)
}

// NewLibrary returns an empty library in the loading state with the default
// view state (all posts, newest first).
func NewLibrary() *Library {
	return &Library{
		state:  corpus.DefaultViewState(),
		status: Status{State: StateLoading},
	}
}

// SetLoading marks a load as in progress. The previous corpus stays
// published until the load resolves.
func (l *Library) SetLoading() {
	l.mu.Lock()
	l.status = Status{State: StateLoading}
	status := l.status
	l.mu.Unlock()
	l.notify(status)
}

// SetCorpus publishes a freshly loaded corpus, rebuilds the tag index, and
// clears any error status. The slice is copied so callers cannot mutate the
// published corpus afterwards.
func (l *Library) SetCorpus(posts []corpus.Post) {
	owned := make([]corpus.Post, len(posts))
	copy(owned, posts)

	l.mu.Lock()
	l.posts = owned
	l.tags = corpus.Tags(owned)
	l.status = Status{State: StateReady}
	status := l.status
	l.mu.Unlock()
	l.notify(status)
}

// SetStaleCorpus publishes an archived corpus after a failed load. The
// status stays ready so the renderer shows posts, but carries the failure
// cause and a stale marker.
func (l *Library) SetStaleCorpus(posts []corpus.Post, cause error) {
	owned := make([]corpus.Post, len(posts))
	copy(owned, posts)

	l.mu.Lock()
	l.posts = owned
	l.tags = corpus.Tags(owned)
	l.status = Status{State: StateReady, Err: cause.Error(), Stale: true}
	status := l.status
	l.mu.Unlock()
	l.notify(status)
}

// SetError records a failed load. The corpus is left empty: a load is
// all-or-nothing, so no partial corpus or tag set is ever published.
func (l *Library) SetError(err error) {
	l.mu.Lock()
	l.posts = nil
	l.tags = nil
	l.status = Status{State: StateError, Err: err.Error()}
	status := l.status
	l.mu.Unlock()
	l.notify(status)
}

func (l *Library) notify(status Status) {
	if l.onStatus != nil {
		l.onStatus(status)
	}
}

// SetActiveTag applies the "active tag changed" signal. An empty tag means
// no filter.
func (l *Library) SetActiveTag(tag string) {
	if tag == "" {
		tag = corpus.TagAll
	}
	l.mu.Lock()
	l.state.Tag = tag
	l.mu.Unlock()
}

// SetSortOrder applies the "sort order changed" signal.
func (l *Library) SetSortOrder(order corpus.SortOrder) {
	l.mu.Lock()
	l.state.Sort = order
	l.mu.Unlock()
}

// View recomputes and returns the current display list. An empty list is a
// valid outcome (nothing loaded, or no posts match the active tag).
func (l *Library) View() []corpus.Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return corpus.ComputeView(l.posts, l.state)
}

// All returns the full corpus in the default view order (newest first),
// regardless of the user's current filter. Feeds and sitemaps use this.
func (l *Library) All() []corpus.Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return corpus.ComputeView(l.posts, corpus.DefaultViewState())
}

// Post looks up one post in the corpus by slug.
func (l *Library) Post(slug string) (corpus.Post, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return corpus.Post{}, false
}

// Tags returns the tag index of the full corpus. It is unaffected by the
// active filter.
func (l *Library) Tags() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tags := make([]string, len(l.tags))
	copy(tags, l.tags)
	return tags
}

// ViewState returns the current user-selected state.
func (l *Library) ViewState() corpus.ViewState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Status returns the current load status.
func (l *Library) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Len returns the number of posts in the corpus.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.posts)
}
