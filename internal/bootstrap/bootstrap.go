package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
	boltInfra "github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	pgInfra "github.com/fastygo/tasklist/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/tasklist/internal/infrastructure/redis"
	"github.com/fastygo/tasklist/internal/services/lifecycle"
	"github.com/fastygo/tasklist/internal/store"
	"github.com/fastygo/tasklist/repository"
	boltRepo "github.com/fastygo/tasklist/repository/bolt"
	"github.com/fastygo/tasklist/repository/memory"
	pgRepo "github.com/fastygo/tasklist/repository/postgres"
	redisRepo "github.com/fastygo/tasklist/repository/redis"
	"github.com/fastygo/tasklist/usecase"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

// App holds the wired core shared by every entry point.
type App struct {
	Slot       repository.SlotRepository
	Store      *store.Store
	Tasks      *taskUC.UseCase
	Dispatcher *usecase.Dispatcher
}

// New opens the configured slot backend, loads the state and builds the
// task use case around it. Backend shutdown hooks go to manager.
func New(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	slot, err := OpenSlot(ctx, cfg, manager, logger)
	if err != nil {
		return nil, err
	}

	stateStore := store.New(slot, cfg.Store.Key, logger, store.WithLocation(loc))
	state := stateStore.Load(ctx)

	tasks := taskUC.New(state, stateStore, logger, taskUC.WithLocation(loc))
	dispatcher := usecase.NewDispatcher()
	tasks.Register(dispatcher)

	logger.Info("task list ready",
		zap.String("driver", cfg.Store.Driver),
		zap.Int("tasks", len(state.Tasks)),
		zap.Int("deleted_tasks", len(state.DeletedTasks)))

	return &App{
		Slot:       slot,
		Store:      stateStore,
		Tasks:      tasks,
		Dispatcher: dispatcher,
	}, nil
}

// OpenSlot connects the slot backend selected by cfg.Store.Driver.
func OpenSlot(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (repository.SlotRepository, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("memory store selected, state will not survive a restart")
		return memory.NewSlotRepository(), nil

	case config.DriverBolt:
		db, err := boltInfra.Open(cfg.Bolt.Path, cfg.Bolt.Bucket, logger)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		manager.Register("bolt", func(context.Context) error {
			return boltInfra.Close(db, logger)
		})
		return boltRepo.NewSlotRepository(db, cfg.Bolt.Bucket), nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		manager.Register("redis", func(context.Context) error {
			return client.Close()
		})
		return redisRepo.NewSlotRepository(client, cfg.Redis.KeyPrefix), nil

	case config.DriverPostgres:
		if _, err := pgInfra.MigrateSlots(cfg.Database, cfg.Migrations, logger); err != nil {
			return nil, fmt.Errorf("migrate state_slots: %w", err)
		}
		pool, err := openPostgresPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("connected to postgres", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))
		manager.Register("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		return pgRepo.NewSlotRepository(pool), nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// openPostgresPool sizes a pgx pool for a single slot row and checks it answers.
func openPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		pgxCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pgxCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
