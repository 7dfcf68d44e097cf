package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/filmfusion/internal/adapter"
	"github.com/mmcdole/filmfusion/internal/adapter/firebase"
	"github.com/mmcdole/filmfusion/internal/service"
	"github.com/mmcdole/filmfusion/internal/store"
	"github.com/mmcdole/filmfusion/internal/tui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filmfusion",
		Short:         "Browse the Film Fusion movie catalog in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.AddCommand(
		newSetupCmd(),
		newMoviesCmd(),
		newFavoritesCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return root
}

// app holds the wired services shared by the TUI and the subcommands
type app struct {
	cfg       *adapter.Config
	logger    *slog.Logger
	cache     *store.MovieStore
	session   *service.Session
	movies    *service.MovieService
	favorites *service.FavoriteService
}

func newApp(cfg *adapter.Config, logger *slog.Logger) (*app, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("not configured, run 'filmfusion setup' first")
	}

	cache, err := store.NewMovieStore(cfg.CacheDir(), cfg.Firebase.ProjectID)
	if err != nil {
		// A locked or unreadable cache only costs us the instant first paint
		logger.Warn("cache unavailable, using memory only", "error", err)
		cache, _ = store.NewMovieStore("", "")
	}

	backend := cfg.Backend()
	session := service.NewSession(firebase.NewAuth(backend, logger), nil, logger)
	repo := firebase.NewFirestore(backend, session.TokenSource(), logger)
	session.SetProfiles(repo)

	return &app{
		cfg:       cfg,
		logger:    logger,
		cache:     cache,
		session:   session,
		movies:    service.NewMovieService(repo, cache, logger),
		favorites: service.NewFavoriteService(repo, cache, logger),
	}, nil
}

func (a *app) Close() error {
	return a.cache.Close()
}

func runTUI() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting filmfusion", "version", Version)

	if err := ensureConfigured(cfg, os.Stdin, os.Stdout); err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.movies, a.favorites, a.session, tui.Options{
		HomeTopRated: cfg.UI.HomeTopRated,
		HomeLatest:   cfg.UI.HomeLatest,
		Opener:       adapter.NewLauncher(cfg.UI.PosterCommand, cfg.UI.PosterArgs, logger),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
