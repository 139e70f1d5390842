package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/thekrishmellow/life-sorter/internal/config"
	"github.com/thekrishmellow/life-sorter/internal/store"
	"github.com/thekrishmellow/life-sorter/internal/tracker"
)

// openTracker loads configuration, opens the backing store and hydrates the
// tracker. The returned cleanup closes the store.
func openTracker(ctx context.Context) (*tracker.Tracker, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	path := cfg.StorePath
	if path == "" {
		path, err = store.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	st, err := store.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = st.Close()
	}

	tr, err := tracker.New(ctx, st)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return tr, cfg, cleanup, nil
}
