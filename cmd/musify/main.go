package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gabrielcapilla/musify/internal/catalog"
	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/metrics"
	"github.com/gabrielcapilla/musify/internal/ports"
	"github.com/gabrielcapilla/musify/internal/services/config"
	"github.com/gabrielcapilla/musify/internal/services/player"
	"github.com/gabrielcapilla/musify/internal/services/storage"
	"github.com/gabrielcapilla/musify/internal/source"
	"github.com/gabrielcapilla/musify/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const usage = `usage:
  musify                 browse and play the catalog
  musify import <file>   add the songs listed in a YAML file to the catalog
  musify remove <id>     remove the song with the given mediaId from the catalog`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "musify: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.NewViperConfigService("").Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	logFile, err := logger.Init(logger.DefaultPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := storage.NewBboltStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("could not open catalog store: %w", err)
	}
	defer store.Close()

	switch {
	case len(args) == 0:
		return browse(cfg, store)
	case args[0] == "import" && len(args) == 2:
		return importCatalog(cfg, store, args[1])
	case args[0] == "remove" && len(args) == 2:
		return removeSong(cfg, store, args[1])
	default:
		return errors.New(usage)
	}
}

func importCatalog(cfg domain.Config, store ports.CatalogWriter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := catalog.ImportYAML(context.Background(), f, store, cfg.SongCollection)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d songs into %q\n", n, cfg.SongCollection)
	return nil
}

func removeSong(cfg domain.Config, store ports.CatalogWriter, mediaID string) error {
	if err := store.DeleteSong(context.Background(), cfg.SongCollection, mediaID); err != nil {
		return fmt.Errorf("could not remove %q: %w", mediaID, err)
	}
	fmt.Printf("removed %q from %q\n", mediaID, cfg.SongCollection)
	return nil
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	logger.Log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Log.Error().Err(err).Msg("Metrics server stopped")
	}
}

func browse(cfg domain.Config, store ports.StorageService) error {
	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, m)
	}

	src := source.New(catalog.NewFetcher(store, cfg.SongCollection, m), m)
	mpv := player.NewMpvPlayer(cfg.MpvSocket)
	defer mpv.Close()

	factory := player.HTTPDataSourceFactory{UserAgent: cfg.UserAgent}
	p := tea.NewProgram(ui.InitialModel(src, factory, mpv, store, cfg.HistoryLimit), tea.WithAltScreen())

	src.WhenReady(func(ok bool) {
		p.Send(ports.CatalogReadyMsg{OK: ok})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Load(ctx)

	_, err := p.Run()
	return err
}
