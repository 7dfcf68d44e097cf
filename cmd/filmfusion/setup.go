package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mmcdole/filmfusion/internal/adapter"
	"github.com/mmcdole/filmfusion/internal/adapter/firebase"
	"github.com/spf13/cobra"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure the Firebase project to read movies from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := runSetupFlow(cfg, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run filmfusion to start browsing.")
			return nil
		},
	}
}

// ensureConfigured runs the first-run setup when the project is not
// configured yet. On success the caller goes on to start the TUI.
func ensureConfigured(cfg *adapter.Config, in io.Reader, out io.Writer) error {
	if cfg.IsConfigured() {
		return nil
	}
	if err := runSetupFlow(cfg, in, out); err != nil {
		return err
	}
	fmt.Fprintln(out, "Starting Film Fusion...")
	return nil
}

// runSetupFlow asks for the project settings, checks them and saves the config
func runSetupFlow(cfg *adapter.Config, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Film Fusion!")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	for {
		apiKey, err := prompt(reader, out, "Firebase web API key", cfg.Firebase.APIKey)
		if err != nil {
			return err
		}
		projectID, err := prompt(reader, out, "Firebase project id", cfg.Firebase.ProjectID)
		if err != nil {
			return err
		}
		if apiKey == "" || projectID == "" {
			fmt.Fprintln(out, "Both values are required. Please try again.")
			continue
		}

		cfg.Firebase.APIKey = apiKey
		cfg.Firebase.ProjectID = projectID

		fmt.Fprintln(out)
		count, err := checkProjectWithSpinner(cfg.Backend(), out)
		if err != nil {
			fmt.Fprintf(out, "\n✗ Could not read the movie catalog: %v\n", err)
			fmt.Fprintln(out, "Please check the values and try again.")
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintf(out, "✓ Found %d movies\n", count)
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✓ Configuration saved!")
	fmt.Fprintln(out)
	return nil
}

// prompt reads one line, keeping current when the answer is empty
func prompt(reader *bufio.Reader, out io.Writer, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	input, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if v := strings.TrimSpace(input); v != "" {
		return v, nil
	}
	return current, nil
}

// checkProjectWithSpinner lists the movies collection with a visual spinner
func checkProjectWithSpinner(cfg firebase.Config, out io.Writer) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	type result struct {
		count int
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		movies, err := firebase.NewFirestore(cfg, nil, nil).ListMovies(ctx)
		resultCh <- result{len(movies), err}
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Fprintf(out, "\r%s Checking project...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(out, clearSpinnerLine)
			return res.count, res.err

		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s Checking project...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Fprint(out, clearSpinnerLine)
			return 0, fmt.Errorf("check timed out")
		}
	}
}
