package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/shuffle"
	"github.com/abhisek/quizdeck/internal/store"
)

// deps are the collaborators every command shares.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	learner *store.Learner
	closers []func() error
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn("close failed", "error", err)
		}
	}
	d.log.Sync()
}

// openDeps resolves config with flag overrides, then opens the logger, the
// event store and the learner's key-value backend.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if s, _ := cmd.Flags().GetUint64("seed"); s != 0 {
		cfg.Seed = s
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log}

	dbPath := cfg.ResolvedDBPath()
	if err := store.EnsureDir(dbPath); err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)

	kv := st.KV()
	if cfg.Store == config.StoreRedis {
		rkv, err := store.NewRedisKV(cmd.Context(), cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		d.closers = append(d.closers, rkv.Close)
		kv = rkv
	}
	d.learner = store.NewLearner(kv, log, store.WithClock(timeNow))

	log.Debug("dependencies ready", "db", dbPath, "store", cfg.Store)
	return d, nil
}

// loadCatalog loads the configured manifest.
func (d *deps) loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(d.cfg.CatalogPath, d.log)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no catalog at %s: pass --catalog or set QUIZDECK_CATALOG", d.cfg.CatalogPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// env builds the screen environment for the TUI.
func (d *deps) env(c *catalog.Catalog) *screen.Env {
	rng := shuffle.NewRand(d.cfg.Seed)
	return &screen.Env{
		Catalog:   c,
		Learner:   d.learner,
		Events:    d.store.EventRepo(),
		Rng:       rng,
		Selector:  selector.New(rng, selector.WithHalfLife(d.cfg.HalfLifeHours)),
		Log:       d.log,
		ExportDir: filepath.Join(d.cfg.DataDir, "exports"),
	}
}

// runApp launches the TUI. initial, when non-nil, builds the first screen
// from the environment.
func runApp(cmd *cobra.Command, initial func(*screen.Env) (screen.Screen, error)) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := d.loadCatalog()
	if err != nil {
		return err
	}
	env := d.env(c)

	var opts app.Options
	if initial != nil {
		s, err := initial(env)
		if err != nil {
			return err
		}
		opts.Initial = s
	}

	d.log.Info("starting TUI", "topics", len(c.Topics()), "questions", c.QuestionCount())
	return app.Run(env, opts)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
