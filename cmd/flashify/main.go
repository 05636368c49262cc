// Command flashify is a client for the Flashify flashcard API: manage
// decks and cards from the command line, bulk-import cards from
// markdown, or serve the local web UI for studying.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/hiten-shah0106/flashify/internal/api"
	"github.com/hiten-shah0106/flashify/internal/auth"
	"github.com/hiten-shah0106/flashify/internal/config"
	"github.com/hiten-shah0106/flashify/internal/importer"
	"github.com/hiten-shah0106/flashify/internal/storage"
	"github.com/hiten-shah0106/flashify/internal/web"
)

const usage = `Usage: flashify [flags] <command> [args]

Commands:
  signup                      register an account (--email, --password)
  login                       log in and persist the session (--email, --password)
  logout                      discard the persisted session
  whoami                      show the current auth status
  decks                       list your decks
  deck-create <name>          create a deck
  deck-delete <deck-id>       delete a deck
  cards <deck-id>             list a deck's cards
  card-add <deck-id> <q> <a>  add a card
  card-edit <card-id> <q> <a> rewrite a card
  card-delete <card-id>       delete a card
  import <deck-id> <source>   import markdown cards from a dir or git URL
  serve                       run the local web UI

Flags:
`

func main() {
	flags := pflag.NewFlagSet("flashify", pflag.ExitOnError)
	configFile := flags.String("config", "", "Path to a YAML config file")
	flags.String("api-url", "http://localhost:5000", "Base URL of the Flashify API")
	flags.String("db", config.DefaultDBPath(), "Path to the credential store")
	flags.String("listen", "127.0.0.1:8484", "Listen address for the web UI")
	flags.Duration("timeout", 15*time.Second, "Timeout for API requests")
	flags.String("cache-dir", config.DefaultCacheDir(), "Cache directory for git card sources")
	email := flags.String("email", "", "Email for signup/login")
	password := flags.String("password", "", "Password for signup/login")
	prune := flags.Bool("prune", false, "Import: delete remote cards absent from the source")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile, flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open credential store: %v", err)
	}
	defer store.Close()

	client := api.New(cfg.APIURL, cfg.Timeout)
	mgr := auth.NewManager(client, store)
	ctx := context.Background()

	cli := &app{cfg: cfg, client: client, auth: mgr, prune: *prune}

	var runErr error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "signup":
		runErr = cli.signup(ctx, *email, *password)
	case "login":
		runErr = cli.login(ctx, *email, *password)
	case "logout":
		runErr = mgr.Logout()
	case "whoami":
		runErr = cli.whoami(ctx)
	case "serve":
		runErr = cli.serve(ctx)
	case "decks":
		runErr = cli.authenticated(ctx, func(token string) error { return cli.listDecks(ctx, token) })
	case "deck-create":
		runErr = cli.withArgs(ctx, rest, 1, func(token string) error { return cli.createDeck(ctx, token, rest[0]) })
	case "deck-delete":
		runErr = cli.withArgs(ctx, rest, 1, func(token string) error { return client.DeleteDeck(ctx, token, rest[0]) })
	case "cards":
		runErr = cli.withArgs(ctx, rest, 1, func(token string) error { return cli.listCards(ctx, token, rest[0]) })
	case "card-add":
		runErr = cli.withArgs(ctx, rest, 3, func(token string) error {
			_, err := client.CreateCard(ctx, token, rest[0], rest[1], rest[2])
			return err
		})
	case "card-edit":
		runErr = cli.withArgs(ctx, rest, 3, func(token string) error {
			_, err := client.UpdateCard(ctx, token, rest[0], rest[1], rest[2])
			return err
		})
	case "card-delete":
		runErr = cli.withArgs(ctx, rest, 1, func(token string) error { return client.DeleteCard(ctx, token, rest[0]) })
	case "import":
		runErr = cli.withArgs(ctx, rest, 2, func(token string) error { return cli.importCards(ctx, token, rest[0], rest[1]) })
	default:
		flags.Usage()
		os.Exit(2)
	}
	if runErr != nil {
		log.Fatalf("%s failed: %v", args[0], runErr)
	}
}

type app struct {
	cfg    *config.Config
	client *api.Client
	auth   *auth.Manager
	prune  bool
}

// authenticated rehydrates the persisted credential and runs fn with the
// bearer token. A missing credential is a caller error reported before
// any request goes out.
func (a *app) authenticated(ctx context.Context, fn func(token string) error) error {
	if err := a.auth.Initialize(ctx); err != nil {
		return err
	}
	if !a.auth.Authenticated() {
		return fmt.Errorf("not logged in; run 'flashify login' first")
	}
	return fn(a.auth.Token())
}

func (a *app) withArgs(ctx context.Context, rest []string, want int, fn func(token string) error) error {
	if len(rest) != want {
		return fmt.Errorf("expected %d argument(s), got %d", want, len(rest))
	}
	return a.authenticated(ctx, fn)
}

func (a *app) signup(ctx context.Context, email, password string) error {
	res, err := a.auth.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	if res.User != nil {
		fmt.Printf("Account created for %s. Confirm your email, then log in.\n", res.User.Email)
	} else {
		fmt.Println("Signup accepted.")
	}
	return nil
}

func (a *app) login(ctx context.Context, email, password string) error {
	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if res.Token() == "" {
		return fmt.Errorf("no session issued; is the account confirmed?")
	}
	if res.User != nil {
		fmt.Printf("Logged in as %s.\n", res.User.Email)
	} else {
		fmt.Println("Logged in.")
	}
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.auth.Initialize(ctx); err != nil {
		return err
	}
	if !a.auth.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	if user := a.auth.User(); user != nil {
		fmt.Printf("Logged in as %s (id %s).\n", user.Email, user.ID)
	} else {
		fmt.Println("Logged in, but the identity could not be resolved.")
	}
	return nil
}

func (a *app) listDecks(ctx context.Context, token string) error {
	decks, err := a.client.ListDecks(ctx, token)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Println("No decks yet.")
		return nil
	}
	for _, deck := range decks {
		fmt.Printf("%s\t%s\n", deck.ID, deck.Name)
	}
	return nil
}

func (a *app) createDeck(ctx context.Context, token, name string) error {
	deck, err := a.client.CreateDeck(ctx, token, name)
	if err != nil {
		return err
	}
	fmt.Printf("Created deck %q with id %s.\n", deck.Name, deck.ID)
	return nil
}

func (a *app) listCards(ctx context.Context, token, deckID string) error {
	cards, err := a.client.ListCards(ctx, token, deckID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("This deck has no cards.")
		return nil
	}
	for _, card := range cards {
		fmt.Printf("%s\tQ: %s\tA: %s\n", card.ID, card.Question, card.Answer)
	}
	return nil
}

func (a *app) importCards(ctx context.Context, token, deckID, source string) error {
	im := importer.New(a.client, a.cfg.CacheDir)
	stats, err := im.Run(ctx, token, deckID, source, a.prune)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d cards: %d created, %d already present, %d pruned, %d errors.\n",
		stats.Parsed, stats.Created, stats.Skipped, stats.Pruned, len(stats.Errors))
	for _, e := range stats.Errors {
		fmt.Printf("- %v\n", e)
	}
	return nil
}

// serve initializes auth once at startup and runs the local web UI. The
// UI itself handles login when no credential is stored yet.
func (a *app) serve(ctx context.Context) error {
	if err := a.auth.Initialize(ctx); err != nil {
		slog.Warn("auth initialization failed; starting logged out", "error", err)
	}
	srv := web.NewServer(a.auth, a.client)
	slog.Info("serving Flashify UI", "addr", a.cfg.Listen, "api", a.cfg.APIURL)
	return http.ListenAndServe(a.cfg.Listen, srv)
}
