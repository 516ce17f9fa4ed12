package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/atomicstack/suggestbox/internal/logging/events"
	"github.com/atomicstack/suggestbox/internal/suggest"
	"github.com/atomicstack/suggestbox/internal/suggestsvc"
	"github.com/atomicstack/suggestbox/internal/transport"
	"github.com/atomicstack/suggestbox/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 2 * time.Second

// Config describes user-provided application options.
type Config struct {
	Endpoint    string
	Locale      string
	Debounce    time.Duration
	Timeout     time.Duration
	MinInterval time.Duration
	MaxRows     int
	Width       int
	Height      int
	Footer      bool
	Offline     bool
	WordsFile   string
}

// Run bootstraps and executes the Bubble Tea program. Every submitted query
// is written to out, one per line, once the program exits.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	endpoint := cfg.Endpoint
	var srv *suggestsvc.Server
	if cfg.Offline {
		var err error
		srv, err = startOffline(cfg.WordsFile)
		if err != nil {
			return err
		}
		endpoint = srv.Endpoint()
		g.Go(srv.Serve)
	}

	var (
		mu        sync.Mutex
		submitted []string
	)
	fetcher := suggest.NewFetcher(transport.NewClient(cfg.MinInterval), endpoint, cfg.Timeout)
	model := ui.NewModel(ui.Options{
		Fetcher:  fetcher,
		Debounce: cfg.Debounce,
		Locale:   cfg.Locale,
		MaxRows:  cfg.MaxRows,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Footer:   cfg.Footer,
		OnSubmit: func(query string) error {
			mu.Lock()
			submitted = append(submitted, query)
			mu.Unlock()
			return nil
		},
	})
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	err := g.Wait()

	mu.Lock()
	defer mu.Unlock()
	events.App.Exit(len(submitted), err)
	for _, q := range submitted {
		fmt.Fprintln(out, q)
	}
	return err
}

func startOffline(wordsFile string) (*suggestsvc.Server, error) {
	words := suggestsvc.DefaultWords()
	if wordsFile != "" {
		loaded, err := suggestsvc.LoadWords(wordsFile)
		if err != nil {
			return nil, err
		}
		words = loaded
	}
	srv, err := suggestsvc.Listen("127.0.0.1:0", suggestsvc.New(words, 0))
	if err != nil {
		return nil, fmt.Errorf("start offline suggestions: %w", err)
	}
	events.App.Offline(srv.Addr(), len(words))
	return srv, nil
}
