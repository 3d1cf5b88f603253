// Package redis はRedisクライアントの初期化を提供します。
package redis

import (
	"context"
	"os"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// NewRedisClient は環境変数からRedisクライアントを生成し、疎通確認します。
//   - REDIS_ADDR: 例 "localhost:6379"（未設定ならそのデフォルト）
//   - REDIS_PASSWORD, REDIS_DB: 任意
func NewRedisClient() (*redisv9.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
