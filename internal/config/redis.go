package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from environment variables and
// verifies connectivity with a short ping. Redis backs the public
// event-listing cache and the rate limiter. On connection failure it
// returns nil so callers can run with those features disabled.
//
// Recognised variables:
//
//	REDIS_ADDR      host:port (wins over host/port pair)
//	REDIS_HOST      hostname, combined with REDIS_PORT
//	REDIS_PORT      port number
//	REDIS_PASSWORD  optional password
//	REDIS_DB        database index, default 0
//	REDIS_TLS       enable TLS when truthy
func NewRedisClient() *redis.Client {
	addr := getenv("REDIS_ADDR", "")
	if host, port := getenv("REDIS_HOST", ""), getenv("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	var tlsConf *tls.Config
	if envBool("REDIS_TLS", false) {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  getenv("REDIS_PASSWORD", ""),
		DB:        envInt("REDIS_DB", 0),
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
