package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/myblog/internal/client/content"
	"github.com/dmitrijs2005/myblog/internal/client/guard"
	"github.com/dmitrijs2005/myblog/internal/client/models"
	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/client/services"
	"github.com/dmitrijs2005/myblog/internal/client/session"
)

func (a *App) registerRoutes() {
	r := a.router
	protected := func(v router.View) router.View { return guard.Protected(a.session, r, v) }
	publicOnly := func(v router.View) router.View { return guard.PublicOnly(a.session, r, v) }

	r.Handle(router.PathHome, func(router.Params) router.View { return router.ViewFunc(a.renderHome) })
	r.Handle(router.PatternPost, func(p router.Params) router.View { return a.postView(p["id"]) })
	r.Handle(router.PatternEditPost, func(p router.Params) router.View { return protected(a.editView(p["id"])) })
	r.Handle(router.PathEditor, func(router.Params) router.View { return protected(router.ViewFunc(a.renderEditor)) })
	r.Handle(router.PathMyPosts, func(router.Params) router.View { return protected(router.ViewFunc(a.renderMyPosts)) })
	r.Handle(router.PathProfile, func(router.Params) router.View { return protected(router.ViewFunc(a.renderProfile)) })
	r.Handle(router.PathLogin, func(router.Params) router.View { return publicOnly(router.ViewFunc(a.renderLogin)) })
	r.Handle(router.PathRegister, func(router.Params) router.View { return publicOnly(router.ViewFunc(a.renderRegister)) })
	r.NotFound(func(router.Params) router.View { return router.ViewFunc(a.renderNotFound) })
}

func (a *App) renderNotFound(_ context.Context, w io.Writer) error {
	fmt.Fprintln(w, a.styles.Error.Render("Page not found."))
	fmt.Fprintln(w, a.styles.Muted.Render("Type 'help' to see the available commands."))
	return nil
}

func (a *App) renderHome(ctx context.Context, w io.Writer) error {
	posts, err := a.posts.List(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load posts", "error", err)
		a.printError(err)
		return nil
	}
	a.renderPostList(w, "All Blog Posts", posts, "No posts yet. Be the first to write one!")
	return nil
}

func (a *App) renderMyPosts(ctx context.Context, w io.Writer) error {
	name, posts, err := a.posts.Mine(ctx)
	if err != nil {
		a.printError(err)
		return nil
	}
	a.renderPostList(w, name+"'s Posts", posts, "You haven't written any posts yet.")
	return nil
}

func (a *App) renderPostList(w io.Writer, title string, posts []models.Post, empty string) {
	fmt.Fprintln(w, a.styles.Title.Render(title))
	if len(posts) == 0 {
		fmt.Fprintln(w, a.styles.Muted.Render(empty))
		return
	}

	for _, p := range posts {
		fmt.Fprintf(w, "\n[%s] %s\n", p.ID, a.styles.Heading.Render(p.Title))
		if p.Author != nil {
			fmt.Fprintf(w, "    by %s\n", p.Author.Name())
		}
		if img := content.FirstImageURL(p.Content); img != "" {
			fmt.Fprintf(w, "    image: %s\n", img)
		}
		if ex := content.Excerpt(p.Content, content.DefaultExcerptLength); ex != "" {
			fmt.Fprintf(w, "    %s\n", ex)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.styles.Muted.Render("Type 'open <id>' to read a post."))
}

type postView struct {
	app *App
	id  string
}

func (a *App) postView(id string) router.View { return &postView{app: a, id: id} }

func (v *postView) Render(ctx context.Context, w io.Writer) error {
	a := v.app
	p, err := a.posts.Get(ctx, v.id)
	if err != nil {
		a.printError(err)
		if errors.Is(err, services.ErrPostNotFound) {
			fmt.Fprintln(w, a.styles.Muted.Render("Type 'home' to go back to all posts."))
		}
		return nil
	}

	fmt.Fprintln(w, a.styles.Title.Render(p.Title))
	fmt.Fprintln(w, a.styles.Muted.Render("By "+p.Author.Name()))
	if img := content.FirstImageURL(p.Content); img != "" {
		fmt.Fprintf(w, "Image: %s\n", img)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, content.PlainText(p.Content))

	if a.posts.CanEdit(*p) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, a.styles.Muted.Render(fmt.Sprintf("Type 'edit %s' to edit this post.", p.ID)))
	}
	return nil
}

func (a *App) renderProfile(ctx context.Context, w io.Writer) error {
	me, err := a.posts.Profile(ctx)
	if err != nil {
		if errors.Is(err, services.ErrSessionRejected) {
			fmt.Fprintln(w, "Profile data could not be found.")
			return nil
		}
		a.printError(err)
		return nil
	}

	fmt.Fprintln(w, a.styles.Title.Render(fmt.Sprintf("Welcome, %s!", me.Name())))
	fmt.Fprintln(w, a.styles.Muted.Render("This is your profile page. Here you can see your basic account information."))
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.styles.Heading.Render("Account Details"))
	fmt.Fprintf(w, "Username: %s\n", me.Username)
	if me.DisplayName != "" {
		fmt.Fprintf(w, "Display Name: %s\n", me.DisplayName)
	}
	fmt.Fprintf(w, "Posts: %d\n", len(me.Posts))
	if exp, ok := session.TokenExpiry(a.session.Token()); ok {
		fmt.Fprintf(w, "Session expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) renderEditor(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, a.styles.Title.Render("Create New Post"))

	title, err := getSimpleText(ctx, a.reader, "Title", w)
	if err != nil {
		return err
	}
	body, err := getMultiline(ctx, a.reader, "Content (Markdown)", w)
	if err != nil {
		return err
	}

	msg, post, err := a.posts.Create(ctx, title, body)
	if err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintln(w, a.styles.Success.Render(msg))
	if post != nil && post.ID != "" {
		fmt.Fprintln(w, a.styles.Muted.Render(fmt.Sprintf("Type 'open %s' to read it.", post.ID)))
	}
	return nil
}

type editView struct {
	app *App
	id  string
}

func (a *App) editView(id string) router.View { return &editView{app: a, id: id} }

func (v *editView) Render(ctx context.Context, w io.Writer) error {
	a := v.app
	p, err := a.posts.Get(ctx, v.id)
	if err != nil {
		a.printError(err)
		return nil
	}
	if !a.posts.CanEdit(*p) {
		fmt.Fprintln(w, a.styles.Error.Render("You are not authorized to edit this post."))
		a.router.Replace(router.PostPath(v.id))
		return nil
	}

	fmt.Fprintln(w, a.styles.Title.Render("Edit Post"))
	fmt.Fprintln(w, a.styles.Muted.Render("Current content:"))
	fmt.Fprintln(w, content.PlainText(p.Content))
	fmt.Fprintln(w)

	title, err := getSimpleText(ctx, a.reader, fmt.Sprintf("Title (empty keeps %q)", p.Title), w)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		title = p.Title
	}

	body, err := getMultiline(ctx, a.reader, "New content (Markdown, empty keeps the current content)", w)
	if err != nil {
		return err
	}

	var msg string
	if body == "" {
		msg, _, err = a.posts.UpdateHTML(ctx, v.id, title, p.Content)
	} else {
		msg, _, err = a.posts.Update(ctx, v.id, title, body)
	}
	if err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintln(w, a.styles.Success.Render(msg))
	a.router.Navigate(router.PostPath(v.id))
	return nil
}
