// Package guard gates views on the session status.
//
// Protected views are shown only to an authenticated session; anyone else is
// sent to the login screen. Public-only views (login, register) send an
// authenticated session home. While the session status is still unknown a
// placeholder is rendered and no redirect happens.
package guard

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/client/session"
)

// LoadingPlaceholder is rendered while the session has not been rehydrated.
const LoadingPlaceholder = "Loading..."

// Session is the part of session.Store the guards read.
type Session interface {
	State() session.State
	Subscribe(fn session.Listener) (unsubscribe func())
}

type protected struct {
	sess       Session
	nav        router.Navigator
	view       router.View
	redirected atomic.Bool
}

// Protected wraps view so that it renders only for an authenticated session.
// An unauthenticated session renders nothing and is redirected to the login
// screen once per mount.
func Protected(sess Session, nav router.Navigator, view router.View) router.View {
	return &protected{sess: sess, nav: nav, view: view}
}

func (p *protected) Render(ctx context.Context, w io.Writer) error {
	switch p.sess.State().Status {
	case session.StatusAuthenticated:
		return p.view.Render(ctx, w)
	case session.StatusUnauthenticated:
		if p.redirected.CompareAndSwap(false, true) {
			p.nav.Navigate(router.PathLogin)
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, LoadingPlaceholder)
		return err
	}
}

func (p *protected) Unmount() {
	if u, ok := p.view.(router.Unmounter); ok {
		u.Unmount()
	}
}

type publicOnly struct {
	sess       Session
	nav        router.Navigator
	view       router.View
	redirected atomic.Bool

	mu          sync.Mutex
	unsubscribe func()
}

// PublicOnly wraps a view meant for logged out users. An authenticated
// session renders nothing and is redirected home once per mount, including
// when the session becomes authenticated while the view is mounted.
func PublicOnly(sess Session, nav router.Navigator, view router.View) router.View {
	return &publicOnly{sess: sess, nav: nav, view: view}
}

func (p *publicOnly) Render(ctx context.Context, w io.Writer) error {
	p.subscribe()

	switch p.sess.State().Status {
	case session.StatusAuthenticated:
		p.redirectHome()
		return nil
	case session.StatusUnauthenticated:
		return p.view.Render(ctx, w)
	default:
		_, err := fmt.Fprintln(w, LoadingPlaceholder)
		return err
	}
}

func (p *publicOnly) Unmount() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if u, ok := p.view.(router.Unmounter); ok {
		u.Unmount()
	}
}

func (p *publicOnly) subscribe() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		return
	}
	p.unsubscribe = p.sess.Subscribe(func(st session.State) {
		if st.IsAuthenticated() {
			p.redirectHome()
		}
	})
}

func (p *publicOnly) redirectHome() {
	if p.redirected.CompareAndSwap(false, true) {
		p.nav.Navigate(router.PathHome)
	}
}
