// Package testutil provides testing utilities and helpers for the
// rentnest web service.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Cleanup(func())
}

// TestRedisAddr returns the Redis address used by integration tests.
// Defaults to the local docker-compose instance.
func TestRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// SetupTestRedis connects to the test Redis instance, skipping the test
// when it is not reachable. The returned prefix is unique per call so
// parallel tests cannot collide; keys under it are removed on cleanup.
func SetupTestRedis(t TestingTB) (redis.UniversalClient, string) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: TestRedisAddr()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skip("Test Redis not available:", err)
	}

	prefix := "rentnest-test:" + randomHex(8) + ":"
	t.Cleanup(func() {
		cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelCleanup()

		iter := client.Scan(cleanupCtx, 0, prefix+"*", 100).Iterator()
		for iter.Next(cleanupCtx) {
			_ = client.Del(cleanupCtx, iter.Val()).Err()
		}
		if err := client.Close(); err != nil {
			t.Logf("test redis close failed: %v", err)
		}
	})

	return client, prefix
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(buf)
}
