package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Driver là loại document store được chọn qua scheme của DATABASE_URL
type Driver string

const (
	DriverMongo    Driver = "mongodb"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// DBConfig chứa tất cả các thông tin cấu hình để kết nối storage backend
type DBConfig struct {
	URL    string // Connection string; scheme quyết định driver
	DBName string // Database name khi URL không có path (MongoDB)

	// Connection Pool Configuration
	MaxConns int32
	MinConns int32

	// Retry Configuration
	MaxRetries     int           // Số lần retry tối đa khi kết nối thất bại
	RetryDelay     time.Duration // Delay ban đầu giữa các lần retry
	ConnectTimeout time.Duration // Timeout cho mỗi lần thử kết nối
}

// Pinger is implemented by every connected backend; the health endpoint uses it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Connection is the lifecycle surface shared by MongoDB, PostgresDB and MemoryDB.
type Connection interface {
	Pinger
	Close(ctx context.Context) error
}

// DriverFromURL maps the connection string scheme onto a Driver.
func DriverFromURL(rawURL string) (Driver, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "memory":
		return DriverMemory, nil
	case "":
		return "", fmt.Errorf("database url %q has no scheme", rawURL)
	default:
		return "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// connectWithRetry thực hiện retry logic với exponential backoff
// Formula: delay = base_delay * (2 ^ (attempt - 1))
func connectWithRetry(ctx context.Context, cfg *DBConfig, name string, connect func(ctx context.Context) error) error {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Debug().Str("driver", name).Int("attempt", attempt).Int("max", maxRetries).Msg("database connection attempt")

		connectCtx := ctx
		cancel := func() {}
		if cfg.ConnectTimeout > 0 {
			connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		}
		lastErr = connect(connectCtx)
		cancel()

		if lastErr == nil {
			log.Info().Str("driver", name).Int("attempt", attempt).Msg("database connected")
			return nil
		}

		log.Warn().Err(lastErr).Str("driver", name).Int("attempt", attempt).Msg("database connection attempt failed")

		if attempt < maxRetries {
			delay := cfg.RetryDelay * time.Duration(1<<uint(attempt-1))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}
