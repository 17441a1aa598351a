package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/miosa/osa-chatview/config"
	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/render"
	"github.com/miosa/osa-chatview/server"
	"github.com/miosa/osa-chatview/style"
	"github.com/miosa/osa-chatview/viewer"
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	profileFlag := flag.String("profile", "", "Named profile for settings (~/.osa/profiles/<name>)")
	inFlag := flag.String("in", "-", "Message or conversation JSON file (- for stdin)")
	formatFlag := flag.String("format", "html", "Output format: html, page or ansi")
	serveFlag := flag.Bool("serve", false, "Run the HTTP rendering service")
	viewFlag := flag.Bool("view", false, "Open the conversation in the terminal viewer")
	themeFlag := flag.String("theme", "", "Theme: dark, light, catppuccin or auto")
	widthFlag := flag.Int("width", 0, "Terminal wrap width")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-chatview %s\n", version)
		os.Exit(0)
	}

	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Failed to load .env", "error", err)
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".osa")
	if *profileFlag != "" {
		profileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
	}

	cfg := config.Load(profileDir)
	cfg.ApplyEnv()
	switch *themeFlag {
	case "":
	case "auto":
		// Auto-detect terminal background and set theme accordingly
		if lipgloss.HasDarkBackground() {
			cfg.Theme = "dark"
		} else {
			cfg.Theme = "light"
		}
	default:
		cfg.Theme = *themeFlag
	}
	if *widthFlag > 0 {
		cfg.WordWrap = *widthFlag
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	style.SetTheme(cfg.Theme)

	glamourStyle := style.Current().GlamourStyle
	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		glamourStyle = "notty"
	}

	var err error
	switch {
	case *serveFlag:
		err = serve(cfg, logger)
	case *viewFlag:
		err = view(*inFlag, cfg, glamourStyle)
	default:
		err = renderTo(os.Stdout, *inFlag, *formatFlag, cfg, glamourStyle)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-chatview: %v\n", err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting server", "addr", cfg.Addr, "theme", cfg.Theme, "sanitize", cfg.Sanitize)
	return server.New(cfg, logger).ListenAndServe(ctx, cfg.Addr)
}

func view(path string, cfg config.Config, glamourStyle string) error {
	conv, err := message.Load(path)
	if err != nil {
		return err
	}
	r := render.NewTerminal(markdown.NewTerminal(glamourStyle, cfg.WordWrap), true)
	p := tea.NewProgram(viewer.New(conv, r),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func renderTo(w io.Writer, path, format string, cfg config.Config, glamourStyle string) error {
	conv, err := message.Load(path)
	if err != nil {
		return err
	}

	switch format {
	case "ansi":
		r := render.NewTerminal(markdown.NewTerminal(glamourStyle, cfg.WordWrap), true)
		for i, m := range conv.Messages {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, r.Render(m, 0))
		}
		return nil
	case "html":
		return server.New(cfg, slog.Default()).WriteFragments(w, conv)
	case "page":
		return server.New(cfg, slog.Default()).WritePage(w, conv)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
