// Package router resolves client paths ("/", "/login", "/posts/{id}", ...)
// to views and drives navigation between them.
//
// Navigation is deferred: Navigate and Replace only record the next path.
// Flush (or Run) then mounts and renders views until no navigation is
// pending, so a view may redirect while it renders. Every resolution is a
// fresh mount; the previously mounted view is unmounted first.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/myblog/internal/logging"
	"github.com/gorilla/mux"
)

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathEditor   = "/editor"
	PathMyPosts  = "/myposts"
	PathProfile  = "/profile"

	PatternPost     = "/posts/{id}"
	PatternEditPost = "/posts/{id}/edit"
)

// DefaultMaxHops bounds a redirect chain started by a single Flush.
const DefaultMaxHops = 8

// ErrTooManyRedirects is returned by Flush when views keep redirecting.
var ErrTooManyRedirects = errors.New("too many redirects")

// PostPath returns the detail path of a post.
func PostPath(id string) string { return "/posts/" + url.PathEscape(id) }

// EditPostPath returns the edit path of a post.
func EditPostPath(id string) string { return PostPath(id) + "/edit" }

// View renders one screen.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, w io.Writer) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

// Unmounter is implemented by views that hold resources (subscriptions)
// which must be released when the router moves away from them.
type Unmounter interface {
	Unmount()
}

// Navigator requests navigation. Navigate pushes a history entry,
// Replace overwrites the current one.
type Navigator interface {
	Navigate(path string)
	Replace(path string)
}

// Params carries the variables matched from a route pattern.
type Params map[string]string

// Factory builds a fresh view for a matched route.
type Factory func(p Params) View

type Router struct {
	mu        sync.Mutex
	routes    *mux.Router
	factories map[string]Factory
	notFound  Factory
	out       io.Writer
	log       logging.Logger
	maxHops   int

	pending    string
	hasPending bool
	replace    bool

	current string
	history []string
	mounted View
}

var _ Navigator = (*Router)(nil)

// New creates a router rendering to out. log may be nil.
func New(out io.Writer, log logging.Logger) *Router {
	if log == nil {
		log = logging.NewNop()
	}
	return &Router{
		routes:    mux.NewRouter().UseEncodedPath(),
		factories: make(map[string]Factory),
		out:       out,
		log:       log,
		maxHops:   DefaultMaxHops,
		notFound: func(Params) View {
			return ViewFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprintln(w, "Page not found.")
				return err
			})
		},
	}
}

// Handle registers f for a path pattern; "{name}" segments become Params.
func (r *Router) Handle(pattern string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes.NewRoute().Path(pattern).Name(pattern)
	r.factories[pattern] = f
}

// NotFound replaces the view used for unmatched paths.
func (r *Router) NotFound(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = f
}

// SetMaxHops changes the redirect limit of a single Flush.
func (r *Router) SetMaxHops(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxHops = n
}

func (r *Router) Navigate(path string) { r.schedule(path, false) }

func (r *Router) Replace(path string) { r.schedule(path, true) }

func (r *Router) schedule(path string, replace bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = path
	r.hasPending = true
	r.replace = replace
}

// Pending reports the path of a scheduled but not yet rendered navigation.
func (r *Router) Pending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.hasPending
}

// Current returns the path of the mounted view, "" before the first render.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns the rendered paths, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Run navigates to path and flushes.
func (r *Router) Run(ctx context.Context, path string) error {
	r.Navigate(path)
	return r.Flush(ctx)
}

// Flush renders pending navigations until none is left. Views rendered
// here may schedule further navigations.
func (r *Router) Flush(ctx context.Context) error {
	for hops := 0; ; hops++ {
		path, replace, ok := r.takePending()
		if !ok {
			return nil
		}
		if hops >= r.hopLimit() {
			return fmt.Errorf("%w: stopped at %s", ErrTooManyRedirects, path)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		view := r.mount(path, replace)
		r.log.Debug(ctx, "render", "path", path, "replace", replace)

		if err := view.Render(ctx, r.out); err != nil {
			return err
		}
	}
}

// Close unmounts the current view.
func (r *Router) Close() {
	r.mu.Lock()
	prev := r.mounted
	r.mounted = nil
	r.mu.Unlock()
	unmount(prev)
}

func (r *Router) hopLimit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxHops
}

func (r *Router) takePending() (string, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasPending {
		return "", false, false
	}
	path, replace := r.pending, r.replace
	r.pending, r.hasPending, r.replace = "", false, false
	return path, replace, true
}

func (r *Router) mount(path string, replace bool) View {
	r.mu.Lock()
	prev := r.mounted
	factory, params := r.resolve(path)
	r.mu.Unlock()

	unmount(prev)
	view := factory(params)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounted = view
	r.current = path
	if replace && len(r.history) > 0 {
		r.history[len(r.history)-1] = path
	} else {
		r.history = append(r.history, path)
	}
	return view
}

// resolve must be called with r.mu held.
func (r *Router) resolve(path string) (Factory, Params) {
	u, err := url.Parse(path)
	if err != nil {
		return r.notFound, Params{}
	}
	req := &http.Request{Method: http.MethodGet, URL: u}

	var match mux.RouteMatch
	if !r.routes.Match(req, &match) || match.Route == nil {
		return r.notFound, Params{}
	}

	f, ok := r.factories[match.Route.GetName()]
	if !ok {
		return r.notFound, Params{}
	}

	params := make(Params, len(match.Vars))
	for k, v := range match.Vars {
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		params[k] = v
	}
	return f, params
}

func unmount(v View) {
	if u, ok := v.(Unmounter); ok {
		u.Unmount()
	}
}
