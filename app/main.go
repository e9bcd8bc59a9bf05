package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rss-marquee/app/api"
	"github.com/lysyi3m/rss-marquee/app/cfg"
	"github.com/lysyi3m/rss-marquee/app/clock"
	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/display"
	"github.com/lysyi3m/rss-marquee/app/feed"
	"github.com/lysyi3m/rss-marquee/app/fetch"
	"github.com/lysyi3m/rss-marquee/app/player"
	"github.com/lysyi3m/rss-marquee/app/storage"
	"github.com/lysyi3m/rss-marquee/app/tui"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}
	if appCfg == nil {
		return
	}

	logOutput, closeLog, err := openLogOutput(appCfg)
	if err != nil {
		log.Fatal("Failed to open log file: ", err)
	}
	defer closeLog()

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level})))
	gin.DefaultWriter = logOutput
	gin.DefaultErrorWriter = logOutput

	slog.Info("Starting RSS Marquee", "version", appCfg.Version)

	sources, err := feed.NewLoader(appCfg.FeedsFile).Run()
	if err != nil {
		slog.Error("Failed to load feed table", "error", err)
		os.Exit(1)
	}

	registry, err := feed.NewRegistry(sources)
	if err != nil {
		slog.Error("Failed to build feed registry", "error", err)
		os.Exit(1)
	}
	slog.Info("Feed table loaded", "feeds", registry.Len())

	store, err := openStorage(appCfg)
	if err != nil {
		slog.Error("Failed to open scratch storage", "backend", appCfg.Storage, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	network := fetch.NewHTTPNetwork(appCfg.Timeout, appCfg.UserAgent, appCfg.FetchInterval)
	link := fetch.NewProbeLink(appCfg.ProbeURL, appCfg.Timeout)
	coordinator := fetch.NewCoordinator(network, link, store, clock.Real{}, fetch.Options{
		Backoff: appCfg.ConnectBackoff,
	})

	if err := coordinator.Clear(); err != nil {
		slog.Warn("Failed to clear scratch storage", "error", err)
	}

	ssid, password, err := appCfg.Credentials()
	if err != nil {
		slog.Warn("Failed to load credentials", "error", err)
	}
	if !coordinator.Connect(ctx, ssid, password, appCfg.ConnectAttempts) {
		slog.Warn("No network association, feeds may fail to load")
	}

	if appCfg.Check {
		if !runCheck(ctx, registry, coordinator) {
			os.Exit(1)
		}
		return
	}

	latch := control.NewLatch()

	var (
		presenter display.Presenter = display.NopPresenter{}
		program   *tea.Program
		marquee   *player.Player
	)
	if !appCfg.Headless {
		model := tui.NewModel(latch, func() player.Status { return marquee.Status() })
		program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		presenter = tui.NewPresenter(program)
	}

	matrix := display.NewMatrix(appCfg.Width, appCfg.Height, appCfg.Brightness, presenter)
	renderer := display.NewRenderer(matrix, clock.Real{}, display.Timing{
		Padding: appCfg.Padding,
		Step:    appCfg.Step,
		Hold:    appCfg.Hold,
		Speed:   appCfg.Speed,
	})
	controls := control.NewHandler(latch, matrix, matrix, registry, display.Blank)

	marquee = player.New(registry, coordinator, renderer, controls, clock.Real{}, player.Options{
		Styles:     display.DefaultStyles(),
		BannerHold: appCfg.Banner,
	})

	var httpServer *http.Server
	serverErrChan := make(chan error, 1)
	if appCfg.Port != "" {
		apiHandler := api.NewHandler(registry, marquee, latch, matrix, matrix, appCfg.Version)
		httpServer = &http.Server{
			Addr:         ":" + appCfg.Port,
			Handler:      api.NewServer(apiHandler, appCfg.APIAccessKey),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			slog.Info("Starting HTTP server", "port", appCfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case err := <-serverErrChan:
			slog.Error("Server error", "error", err)
			cancel()
		case <-ctx.Done():
		}
	}()

	if program == nil {
		if err := marquee.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Feed loop error", "error", err)
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			marquee.Run(ctx)
		}()

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("Terminal panel error", "error", err)
		}
		cancel()
		wg.Wait()
	}

	slog.Info("Shutting down")

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	slog.Info("RSS Marquee stopped")
}

// openLogOutput sends logs to a file while the terminal panel owns the screen.
func openLogOutput(c *cfg.Cfg) (io.Writer, func(), error) {
	if c.Headless || c.Check || c.LogFile == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openStorage(c *cfg.Cfg) (storage.Storage, error) {
	switch c.Storage {
	case cfg.StorageSQLite:
		if dir := filepath.Dir(c.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := storage.OpenSQLite(c.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		dir, err := storage.NewDir(c.ScratchDir)
		if err != nil {
			return nil, err
		}
		return dir, nil
	}
}
