package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/filmfusion/internal/adapter"
	"github.com/mmcdole/filmfusion/internal/catalog"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/search"
	"github.com/mmcdole/filmfusion/internal/store"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const commandTimeout = 60 * time.Second

// loadConsoleApp wires the services with a console logger
func loadConsoleApp(cmd *cobra.Command) (*app, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := adapter.ConsoleLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
	slog.SetDefault(logger)
	return newApp(cfg, logger)
}

func newMoviesCmd() *cobra.Command {
	var (
		query    string
		sortName string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Print one page of the movie catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := catalog.ParseSortMode(sortName)
			if !ok {
				return fmt.Errorf("unknown sort %q (use one of: %s)", sortName, sortKeys())
			}

			a, err := loadConsoleApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.movies.Fetch(ctx)
			if err != nil {
				cached, ok := a.movies.Cached()
				if !ok {
					return fmt.Errorf("failed to load movies: %w", err)
				}
				a.logger.Warn("showing cached movies", "error", err)
				movies = cached
			}

			b := catalog.NewBrowser()
			b.SetSource(movies)
			b.SetSearch(query)
			b.SetSort(mode)
			if page != 1 && !b.GoToPage(page) {
				return fmt.Errorf("page %d is out of range (1-%d)", page, max(1, b.TotalPages()))
			}

			printPage(cmd.OutOrStdout(), b.View(), query, titles(movies))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "q", "", "only titles containing this text")
	cmd.Flags().StringVarP(&sortName, "sort", "s", "none", "sort order: "+sortKeys())
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to print")
	return cmd
}

func newFavoritesCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Log in and print your favorite movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			password, err := readPassword(cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			a, err := loadConsoleApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			user, err := a.session.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			defer a.session.Logout()

			favs, err := a.favorites.List(ctx, user)
			if err != nil {
				return fmt.Errorf("failed to load favorites: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.TitleStyle.Render("Favorites of "+user.Name()))
			if len(favs) == 0 {
				fmt.Fprintln(out, "You haven't favorited any movies yet.")
				return nil
			}
			for _, m := range domain.FavoriteMovies(favs) {
				printMovie(out, m, "")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local movie cache",
	}
	var all bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached movies and favorites of the configured project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := clearCache(cfg, all); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cache cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "remove the cache directory of every project")
	cmd.AddCommand(clearCmd)
	return cmd
}

// clearCache empties the configured project's store, or removes the whole
// cache directory when all is set
func clearCache(cfg *adapter.Config, all bool) error {
	if all {
		return adapter.ClearCache(cfg)
	}
	if cfg.CacheDir() == "" {
		return nil
	}

	cache, err := store.NewMovieStore(cfg.CacheDir(), cfg.Firebase.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to open cache (is filmfusion running?): %w", err)
	}
	defer cache.Close()

	if err := cache.InvalidateAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "filmfusion %s\n", Version)
		},
	}
}

// readPassword reads a password without echoing it
func readPassword(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out) // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

func sortKeys() string {
	var keys []string
	for _, m := range catalog.SortModes() {
		keys = append(keys, m.Key())
	}
	return strings.Join(keys, ", ")
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

// printPage writes one catalog page as plain lines
func printPage(out io.Writer, r catalog.Result, query string, all []string) {
	if r.Empty() {
		fmt.Fprintln(out, "No movies found.")
		if s := search.SuggestTitles(query, all, search.DefaultLimit); len(s) > 0 {
			fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(s, ", "))
		}
		return
	}

	for _, m := range r.Items {
		printMovie(out, m, query)
	}
	fmt.Fprintln(out, styles.DimStyle.Render(
		fmt.Sprintf("page %d of %d · %d movies", r.Page, r.TotalPages, len(r.Filtered))))
}

func printMovie(out io.Writer, m domain.Movie, query string) {
	title := styles.Truncate(m.DisplayTitle(), 40)
	fmt.Fprintf(out, "%s%s  %s  %s\n",
		styles.Highlight(title, search.Highlight(query, title), styles.TitleStyle),
		strings.Repeat(" ", max(0, 40-len([]rune(title)))),
		styles.RatingStyle.Render(fmt.Sprintf("★ %-4s", m.DisplayRating())),
		styles.DimStyle.Render(m.DisplayYear()),
	)
}
