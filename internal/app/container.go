package app

import (
	"context"
	"log"
	"os"
	"time"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	"gigmatch/internal/database/migration"
	dbpostgres "gigmatch/internal/database/postgres"
	"gigmatch/internal/notify"
	"gigmatch/internal/ws"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Redis  *redis.Client
	Hub    *ws.Hub
	Bridge *notify.Bridge
	Relay  *notify.Relay
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	rdb := notify.NewRedisClient(cfg.Redis)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	bridge := notify.NewBridge(notify.NewRedisPublisher(rdb), logger)
	relay := notify.NewRelay(rdb, hub, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  rdb,
		Hub:    hub,
		Bridge: bridge,
		Relay:  relay,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
