package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/myblog/internal/client/router"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	open(ctx context.Context, path string) error
	logout(ctx context.Context) error
	whoami() string
}

const (
	helpLoggedOut = "Available commands: home, open <id>, login, register, whoami, exit"
	helpLoggedIn  = "Available commands: home, open <id>, edit <id>, new, myposts, profile, whoami, logout, exit"
)

// pathCommands are commands that only navigate.
var pathCommands = map[string]string{
	"home":     router.PathHome,
	"new":      router.PathEditor,
	"myposts":  router.PathMyPosts,
	"profile":  router.PathProfile,
	"login":    router.PathLogin,
	"register": router.PathRegister,
}

// runREPL starts a simple read–eval–print loop for the myblog CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation or when the user types
// "exit" or "quit". Only a failing input stream is returned as an error;
// EOF and cancellation end the loop normally.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	help           show available commands
//	home           list all posts
//	open <id>      show a post
//	edit <id>      edit one of your posts
//	new            write a post
//	myposts        list your posts
//	profile        show your account
//	login          log in
//	register       create an account
//	logout         log out
//	whoami         print the current user
//	exit | quit    leave the program
//
// Errors returned by screens are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *LineReader, w io.Writer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintf(w, "myblog %s> ", statusFn())
		line, err := in.ReadLine(ctx)
		if err != nil && line == "" {
			fmt.Fprintln(w)
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if path, ok := pathCommands[cmd]; ok {
			report(w, a.open(ctx, path))
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "open", "edit":
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			path := router.PostPath(args[0])
			if cmd == "edit" {
				path = router.EditPostPath(args[0])
			}
			report(w, a.open(ctx, path))

		case "logout":
			report(w, a.logout(ctx))

		case "whoami":
			fmt.Fprintln(w, a.whoami())

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return nil

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func report(w io.Writer, err error) {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
