package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Stohl/tsp-skolan-sub000/internal/app"
	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/config"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/logging"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
	"github.com/Stohl/tsp-skolan-sub000/internal/store"
)

// deps is everything a command needs, opened once per invocation.
type deps struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	service *app.Service
}

// Close flushes the logger and closes the database.
func (d *deps) Close() error {
	_ = d.log.Sync()
	return d.store.Close()
}

// openDeps loads config, catalog and progress, opens the store, and
// builds the service.
func openDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("catalog"); dir != "" {
		cfg.CatalogDir = dir
	}

	log, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(ctx, cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(ctx, dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	prog, err := progress.Open(ctx, st.ProgressRepo())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}

	svc := app.New(cat, prog, app.Options{
		Session:   cfg.Session(),
		LevelTags: cfg.Ranker.LevelTags,
		TopN:      cfg.Ranker.TopN,
		Sink:      events.Fanout{st.EventRepo(), events.NewZapSink(log)},
		Logger:    log,
	})

	log.Debug("runtime ready",
		zap.String("db", dbPath),
		zap.String("catalog", cfg.CatalogDir),
		zap.Int("items", len(cat.Items())),
	)
	return &deps{cfg: cfg, log: log, store: st, service: svc}, nil
}

// warnOnly reports whether err is a save failure the caller can continue past.
func warnOnly(err error) bool {
	var pe *progress.PersistError
	return errors.As(err, &pe)
}
