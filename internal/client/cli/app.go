package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/myblog/internal/client/client"
	"github.com/dmitrijs2005/myblog/internal/client/config"
	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/client/services"
	"github.com/dmitrijs2005/myblog/internal/client/session"
	"github.com/dmitrijs2005/myblog/internal/client/storage"
	"github.com/dmitrijs2005/myblog/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	storage storage.Storage
	closer  io.Closer

	session *session.Store
	router  *router.Router
	auth    services.AuthService
	posts   services.PostService

	reader *LineReader
	out    io.Writer
	styles styles
}

// NewApp opens durable storage (or an in-memory one with Ephemeral) and
// wires the API client, session, services and screens.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if c.Ephemeral {
		return newApp(c, storage.NewMemoryStorage(), nil, os.Stdin, os.Stdout, log), nil
	}

	st, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}
	return newApp(c, st, st, os.Stdin, os.Stdout, log), nil
}

func newApp(c *config.Config, st storage.Storage, closer io.Closer, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.NewNop()
	}

	r := router.New(out, log)
	sess := session.NewStore(st, r, log)

	httpClient := client.NewHTTPClient(client.StorageTokenSource{Storage: st}, log)
	api := client.NewGraphQLClient(c.GraphQLAPI, httpClient, c.Timeout, log)
	log.Debug(context.Background(), "using api", "endpoint", api.Endpoint(), "timeout", c.Timeout)

	a := &App{
		config:  c,
		log:     log,
		storage: st,
		closer:  closer,
		session: sess,
		router:  r,
		auth:    services.NewAuthService(api, sess, log),
		posts:   services.NewPostService(api, sess, log),
		reader:  NewLineReader(in),
		out:     out,
		styles:  newStyles(out),
	}
	a.registerRoutes()
	return a
}

// Run restores the session, shows the home screen and runs the REPL until
// the user exits, input ends or ctx is canceled. It returns an error when
// reading input or closing the storage fails.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close storage: %w", cerr)
		}
	}()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	fmt.Fprintln(a.out, a.styles.Title.Render("MyBlog")+" (type 'help' for commands)")
	if err := a.open(ctx, router.PathHome); err != nil && !errors.Is(err, context.Canceled) {
		a.printError(err)
	}

	return runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the current screen and the storage.
func (a *App) Close() error {
	a.router.Close()
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) open(ctx context.Context, path string) error {
	return a.router.Run(ctx, path)
}

func (a *App) status() string {
	s := a.router.Current()
	if a.isLoggedIn() {
		s = a.session.Identity().DisplayName + " " + s
	}
	return a.styles.Prompt.Render(s)
}

func (a *App) whoami() string {
	if !a.isLoggedIn() {
		return "Not logged in."
	}
	id := a.session.Identity()
	return fmt.Sprintf("%s (@%s, id %s)", id.DisplayName, id.Username, id.UserID)
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, a.styles.Error.Render(services.Describe(err)))
}
