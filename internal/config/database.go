package config

import (
	"blog-backend/internal/infrastructure/database"
)

// DBConfig trả về DBConfig cho infrastructure layer
func (c *Config) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		URL:            c.Database.URL,
		DBName:         c.Database.Name,
		MaxConns:       int32(c.Database.MaxConns),
		MinConns:       int32(c.Database.MinConns),
		MaxRetries:     c.Database.MaxRetries,
		RetryDelay:     c.Database.RetryDelay,
		ConnectTimeout: c.Database.ConnectTimeout,
	}
}
