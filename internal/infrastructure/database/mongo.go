package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// MongoDB quản lý client và database handle của document store chính
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
	Config *DBConfig
}

func NewMongoDB(config *DBConfig) *MongoDB {
	return &MongoDB{Config: config}
}

// databaseName ưu tiên path trong URL, fallback về DBName
func (db *MongoDB) databaseName() string {
	cs, err := connstring.ParseAndValidate(db.Config.URL)
	if err == nil && cs.Database != "" {
		return cs.Database
	}
	if name := strings.TrimSpace(db.Config.DBName); name != "" {
		return name
	}
	return "blog"
}

func (db *MongoDB) clientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(db.Config.URL)
	if db.Config.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(db.Config.MaxConns))
	}
	if db.Config.MinConns > 0 {
		opts.SetMinPoolSize(uint64(db.Config.MinConns))
	}
	if db.Config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(db.Config.ConnectTimeout)
		opts.SetServerSelectionTimeout(db.Config.ConnectTimeout)
	}
	return opts
}

// Connect mở client, ping primary rồi mới gán handle
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Info().Msg("initializing MongoDB connection")

	opts := db.clientOptions()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid mongodb options: %w", err)
	}

	err := connectWithRetry(ctx, db.Config, string(DriverMongo), func(ctx context.Context) error {
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return err
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return err
		}
		db.Client = client
		return nil
	})
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.DB = db.Client.Database(db.databaseName())
	log.Info().Str("database", db.DB.Name()).Msg("MongoDB connection established")
	return nil
}

func (db *MongoDB) Ping(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close ngắt kết nối client; gọi nhiều lần vẫn an toàn
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}

	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := db.Client.Disconnect(closeCtx)
	db.Client = nil
	db.DB = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}

	log.Info().Msg("MongoDB connection closed")
	return nil
}
