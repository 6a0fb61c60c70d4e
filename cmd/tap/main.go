package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tap/internal/config"
	"github.com/xonecas/tap/internal/constants"
	"github.com/xonecas/tap/internal/document"
	"github.com/xonecas/tap/internal/store"
	"github.com/xonecas/tap/internal/textedit"
	"github.com/xonecas/tap/internal/tui"
)

// cellPitch is the hit-test line height of a terminal: one row per line.
const cellPitch = 1

var (
	configPath = flag.String("config", "", "path to config file (default ~/.tap/config.toml)")
	debugFlag  = flag.Bool("debug", false, "enable debug logging")
	dumpFlag   = flag.Bool("dump", false, "print the stored notes and exit")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tap: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	dbPath, err := cfg.DBPath()
	if err != nil {
		return fmt.Errorf("resolve db path: %w", err)
	}

	if *dumpFlag {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Dump(os.Stdout)
	}

	s, err := store.OpenWithFallback(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close notes db")
		}
	}()

	content := textedit.New(textedit.Options{Field: textedit.FieldContent, LineHeight: cellPitch})
	title := textedit.New(textedit.Options{Field: textedit.FieldTitle, SingleLine: true, LineHeight: cellPitch})
	mgr := document.New(s, content, title)
	mgr.Bootstrap(lastActive())

	model := tui.New(tui.Options{
		Manager:   mgr,
		Content:   content,
		Title:     title,
		Theme:     cfg.UI.ThemeOrDefault(),
		ListWidth: cfg.UI.ListWidthOrDefault(),
		TabWidth:  cfg.Editor.TabWidthOrDefault(),
		SoftTabs:  cfg.Editor.SoftTabs,
		InMemory:  s.InMemory(),
	})

	p := tea.NewProgram(model, tea.WithFilter(tui.MouseEventFilter))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tap: %w", err)
	}

	mgr.Flush()
	if err := config.SaveState(&config.State{ActiveNote: activeString(mgr.ActiveID())}); err != nil {
		log.Warn().Err(err).Msg("failed to save state")
	}
	return nil
}

// setupLogging sends the global logger to ~/.tap/tap.log. The terminal
// belongs to the UI, so nothing is logged to stderr.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G304: path is inside the data dir
	f, err := os.OpenFile(filepath.Join(dir, constants.LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.LevelOrDefault()
	if *debugFlag {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	log.Info().Str("level", level.String()).Msg("tap starting")
	return f, nil
}

// lastActive returns the note open at the previous exit, or uuid.Nil.
func lastActive() uuid.UUID {
	st, err := config.LoadState()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load state")
		return uuid.Nil
	}
	if st.ActiveNote == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(st.ActiveNote)
	if err != nil {
		log.Warn().Err(err).Str("id", st.ActiveNote).Msg("ignoring bad active note id")
		return uuid.Nil
	}
	return id
}

func activeString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tap [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal notes app.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
