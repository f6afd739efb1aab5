package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"github.com/ncobase/geocontent/data/config"
)

const defaultDialTimeout = 5 * time.Second

// NewClient creates a redis client and pings it.
func NewClient(ctx context.Context, conf *config.Redis) (*redis.Client, error) {
	opts, err := Options(conf)
	if err != nil {
		return nil, err
	}
	rc := redis.NewClient(opts)

	timeout, cancelFunc := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancelFunc()
	if err := rc.Ping(timeout).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis connect error: %v", err)
	}

	return rc, nil
}

// Options maps conf to client options.
func Options(conf *config.Redis) (*redis.Options, error) {
	if conf == nil || conf.Addr == "" {
		return nil, errors.New("redis configuration is nil or empty")
	}
	dial := conf.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	return &redis.Options{
		Addr:         conf.Addr,
		Username:     conf.Username,
		Password:     conf.Password,
		DB:           conf.Db,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		DialTimeout:  dial,
		PoolSize:     10,
		// Disable maintenance notifications so the client never sends
		// CLIENT MAINT_NOTIFICATIONS ON.
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}, nil
}
