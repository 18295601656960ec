package config

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis mengembalikan nil kalau REDIS_ADDRESS kosong atau redis tidak bisa di-ping.
// Statistik tetap jalan tanpa redis, hanya tanpa cache dan lock.
func ConnectRedis(cfg Config, logg *logrus.Logger) (*redis.Client, *redislock.Client) {
	if cfg.RedisAddress == "" {
		logg.Info("REDIS_ADDRESS kosong, cache statistik dimatikan")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		DB:       0,
		PoolSize: 20,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logg.WithError(err).WithField("addr", cfg.RedisAddress).Warn("gagal konek redis, cache statistik dimatikan")
		_ = rdb.Close()
		return nil, nil
	}

	logg.WithField("addr", cfg.RedisAddress).Info("connected to redis")
	return rdb, redislock.New(rdb)
}
