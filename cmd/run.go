package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/config"
	"github.com/skillpulse/skillpulse/internal/engine"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/store"
)

// runtime is everything a command needs, closed in reverse order of opening.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *engine.Engine
	closes []func()
}

func (r *runtime) Close() {
	for i := len(r.closes) - 1; i >= 0; i-- {
		r.closes[i]()
	}
}

// openRuntime loads configuration, opens the store and builds the engine.
// Logging goes to stderr for serve or when --verbose is set.
func openRuntime(cmd *cobra.Command, serving bool) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: logger.Nop()}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if serving || verbose {
		log, err := logger.New(logger.Options{Mode: cfg.LogMode, Redact: cfg.LogRedact, HashSalt: cfg.LogHashSalt})
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		rt.log = log
		rt.closes = append(rt.closes, log.Sync)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(store.DSN(dbPath))
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.closes = append(rt.closes, func() { st.Close() })

	var locker keylock.Locker = keylock.NewLocal()
	if cfg.RedisAddr != "" {
		rdb, err := keylock.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rt.closes = append(rt.closes, func() { rdb.Close() })
		locker = keylock.NewRedis(rdb, cfg.LockTTL)
		rt.log.Info("using redis locks", "addr", cfg.RedisAddr)
	}

	opts := engine.Options{
		Repo:   st.StatsRepo(),
		Locker: locker,
		Logger: rt.log,
	}
	if cfg.HasSeed {
		seed := uint64(cfg.Seed)
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}
	rt.engine = engine.New(opts)
	return rt, nil
}
