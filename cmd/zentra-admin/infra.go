package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zentra-pos/zentra/internal/bootstrap"
)

// connectSessionRedis connects to the Redis instance holding session records.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel support flexible.
func connectSessionRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
