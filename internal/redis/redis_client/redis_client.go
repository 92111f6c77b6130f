package redis_client

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Params struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func options(p Params) *redis.Options {
	maxPool := runtime.NumCPU() * 8
	if maxPool > 512 {
		maxPool = 512
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Password: p.Password,
		DB:       p.DB,
		PoolSize: maxPool,
	}
}

// NewRedisClient returns a client that has answered a PING.
func NewRedisClient(ctx context.Context, p Params) (*redis.Client, error) {
	rc := redis.NewClient(options(p))

	ctx, cancelFunc := context.WithTimeout(ctx, 5*time.Second)
	defer cancelFunc()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		err = errors.New("Redis connection failed: " + err.Error())
		zap.L().Error("redis_connect", zap.String("addr", fmt.Sprintf("%s:%d", p.Host, p.Port)), zap.Error(err))
		return nil, err
	}
	return rc, nil
}
