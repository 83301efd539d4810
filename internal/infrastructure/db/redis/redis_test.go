package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions_Defaults(t *testing.T) {
	opts := clientOptions(Config{Addr: "localhost:6379"})

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, defaultOpTimeout, opts.ReadTimeout)
	assert.Equal(t, defaultOpTimeout, opts.WriteTimeout)
	assert.Equal(t, defaultOpTimeout, opts.PoolTimeout)
}

func TestClientOptions_CarriesCredentialsAndPool(t *testing.T) {
	opts := clientOptions(Config{
		Addr:         "cache:6380",
		Password:     "s3cret",
		DB:           2,
		PoolSize:     20,
		MinIdleConns: 4,
		DialTimeout:  time.Second,
		OpTimeout:    200 * time.Millisecond,
	})

	assert.Equal(t, "s3cret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.DialTimeout)
	assert.Equal(t, 200*time.Millisecond, opts.ReadTimeout)
}

func TestConnect_UnreachableServer(t *testing.T) {
	// Port 1 on loopback refuses connections.
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}
