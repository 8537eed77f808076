package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/Tiliavir/punch/internal/api"
	"github.com/Tiliavir/punch/internal/config"
	"github.com/Tiliavir/punch/internal/render"
	"github.com/Tiliavir/punch/internal/storage"
)

// env is what every command needs: data directory, config, stored session,
// an API client and a renderer for stdout.
type env struct {
	base    string
	cfg     config.Config
	session storage.Session
	client  *api.Client
	out     *render.Renderer
}

// loadEnv prepares the command environment. With requireLogin set it exits
// with code 1 when no valid session is stored.
func loadEnv(ctx context.Context, requireLogin bool) *env {
	base, err := config.BaseDir()
	if err != nil {
		exitWith(2, err)
	}
	cfg, err := config.Load(base)
	if err != nil {
		exitWith(2, err)
	}
	session, err := storage.LoadSession(base)
	if err != nil {
		exitWith(2, err)
	}
	if requireLogin && !session.LoggedIn() {
		exitWith(1, errors.New("not logged in; run 'punch login' first"))
	}

	var opts []api.Option
	if rootVerbose {
		opts = append(opts, api.WithLogger(log.New(os.Stderr, "punch: ", log.LstdFlags)))
	}
	return &env{
		base:    base,
		cfg:     cfg,
		session: session,
		client:  api.NewClient(ctx, cfg.APIBaseURL, session.Token, opts...),
		out:     newRenderer(cfg.Color),
	}
}

// statusCache returns the status cache shared by every run through
// <base>/status.json.
func (e *env) statusCache() *api.StatusCache {
	return api.NewStatusCache(e.client, e.cfg.StatusTTL(), time.Now,
		api.WithStatusStore(storage.StatusFile{Base: e.base}))
}

func newRenderer(color string) *render.Renderer {
	if rootNoColor {
		color = config.ColorNever
	}
	switch color {
	case config.ColorAlways:
		return render.New(os.Stdout, true, true)
	case config.ColorNever:
		return render.New(os.Stdout, false, false)
	default:
		return render.New(os.Stdout, isTerminal(os.Stdout), false)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exitWith prints err to stderr and exits. A rejected session gets a hint to
// log in again.
func exitWith(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	if errors.Is(err, api.ErrUnauthorized) {
		fmt.Fprintln(os.Stderr, "Your session is no longer accepted; run 'punch login'.")
		code = 1
	}
	os.Exit(code)
}
