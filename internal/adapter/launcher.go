package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNoPoster indicates a movie without a usable poster URL
var ErrNoPoster = errors.New("no poster available")

// Launcher opens poster URLs outside the terminal
type Launcher struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewLauncher creates a Launcher. An empty command uses the system default
// handler (open, xdg-open or start).
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startCommand,
		logger:  logger,
	}
}

// startCommand runs name without waiting for it to exit
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open shows the poster at rawURL. Only absolute http(s) URLs are passed
// to the viewer.
func (l *Launcher) Open(rawURL string) error {
	if rawURL == "" {
		return ErrNoPoster
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not a web address", ErrNoPoster, rawURL)
	}

	name, args := l.commandFor(u.String())
	l.logger.Info("opening poster", "command", name, "url", u.String())

	if err := l.start(name, args...); err != nil {
		l.logger.Error("failed to open poster", "command", name, "error", err)
		return fmt.Errorf("failed to open poster with %s: %w", name, err)
	}
	return nil
}

// commandFor returns the command line that opens target
func (l *Launcher) commandFor(target string) (string, []string) {
	// Tier 1: User configured a specific viewer
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, target)
	}

	// Tier 2: System default
	switch l.goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "cmd", []string{"/c", "start", "", target}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{target}
	}
}
