package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// renderLogin prompts for credentials and logs in. On success the session
// is stored and the user is sent home; on failure the message is shown and
// the screen stays.
//
// The password byte slice is wiped before returning.
func (a *App) renderLogin(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, a.styles.Title.Render("Welcome!"))

	username, err := getSimpleText(ctx, a.reader, "Username", w)
	if err != nil {
		return err
	}
	password, err := getPassword(ctx, a.reader, w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		a.printError(err)
		fmt.Fprintln(w, a.styles.Muted.Render("Don't have an account? Type 'register'."))
		return nil
	}

	fmt.Fprintln(w, a.styles.Success.Render(msg))
	a.router.Navigate(router.PathHome)
	return nil
}

// renderRegister prompts for a new account. On success the user is sent to
// the login screen; the session is not changed.
func (a *App) renderRegister(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, a.styles.Title.Render("Create an Account"))

	username, err := getSimpleText(ctx, a.reader, "Username", w)
	if err != nil {
		return err
	}
	displayName, err := getSimpleText(ctx, a.reader, "Author name", w)
	if err != nil {
		return err
	}
	password, err := getPassword(ctx, a.reader, w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.auth.Register(ctx, username, password, displayName)
	if err != nil {
		a.printError(err)
		return nil
	}

	fmt.Fprintln(w, a.styles.Success.Render(msg))
	a.router.Navigate(router.PathLogin)
	return nil
}

// logout clears the session and shows the screen it redirects to.
func (a *App) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return a.router.Flush(ctx)
}
