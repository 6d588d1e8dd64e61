// Package cache provides Redis-backed caching for hot read paths.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis client; nil when Redis is unavailable.
var Client *redis.Client

// InitRedis connects the shared client. The application degrades gracefully
// when Redis is unreachable: Client stays nil and every helper no-ops.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the shared Redis client, or nil when caching is disabled.
func GetClient() *redis.Client {
	return Client
}

// Close closes the shared client if connected.
func Close() {
	if Client != nil {
		_ = Client.Close()
	}
}
