package artifact

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/go-sod/attrition/internal/database"
	"github.com/go-sod/attrition/internal/logging"
)

// ProvideFor returns the factory of the configured artifact source.
func ProvideFor(cfg *Config, dbCfg *database.Config) (ProvideFn, error) {
	switch cfg.Kind {
	case KindFile:
		return func(ctx context.Context) (Source, error) {
			logging.FromContext(ctx).Infof("reading artifacts from directory %s", cfg.Dir)
			return NewFileSource(cfg.Dir), nil
		}, nil
	case KindBolt:
		return func(ctx context.Context) (Source, error) {
			db, err := database.NewFromEnv(ctx, dbCfg)
			if err != nil {
				return nil, fmt.Errorf("unable open bolt artifact store: %w", err)
			}
			return NewBoltSource(db, cfg.Bucket), nil
		}, nil
	case KindRedis:
		timeout := cfg.RedisTimeout
		return func(ctx context.Context) (Source, error) {
			logging.FromContext(ctx).Infof("reading artifacts from redis %s db %d", cfg.RedisAddr, cfg.RedisDB)
			client := redis.NewClient(&redis.Options{
				Addr:        cfg.RedisAddr,
				DB:          cfg.RedisDB,
				DialTimeout: timeout,
				ReadTimeout: timeout,
			})
			if err := client.Ping(ctx).Err(); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("unable reach redis %s: %w", cfg.RedisAddr, err)
			}
			return NewRedisSource(client, cfg.RedisPrefix, timeout), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown artifact source: %s", cfg.Kind)
	}
}
