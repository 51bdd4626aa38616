// Package cli provides the interactive myblog command-line client.
//
// It wires configuration, durable storage, the session store, the GraphQL
// client and services, and an interactive REPL. Every command maps to a
// route ("/", "/posts/{id}", "/login", ...); the router renders the matching
// screen. Screens that need a login are wrapped in guard.Protected, the login
// and register screens in guard.PublicOnly.
//
// Key features:
//   - Login / Register / Logout
//   - List all posts, your posts, show a single post
//   - Write and edit posts in Markdown
//   - Profile with session expiry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
