package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"

	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	Driver database.Driver
	DB     database.Connection

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo authorRepo.RepositoryInterface
	PostRepo   postRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	AuthorService authorService.ServiceInterface
	PostService   postService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
}

// NewContainer builds the dependency graph in order:
// config → storage → repositories → services → handlers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: CONNECT STORAGE
	// ========================================
	driver, err := database.DriverFromURL(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to select database driver: %w", err)
	}
	c.Driver = driver

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 2: SERVICES & HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	log.Info().Str("driver", string(c.Driver)).Msg("container initialized")
	return c, nil
}

// initStorage connects the backend selected by DATABASE_URL and builds the
// repositories on top of it.
func (c *Container) initStorage(ctx context.Context) error {
	dbConfig := c.Config.DBConfig()

	switch c.Driver {
	case database.DriverMongo:
		db := database.NewMongoDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		c.DB = db

		c.AuthorRepo = authorRepo.NewMongoRepository(ctx, db.DB)
		c.PostRepo = postRepo.NewMongoRepository(ctx, db.DB)

	case database.DriverPostgres:
		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		c.DB = db

		authors, err := authorRepo.NewPostgresRepository(ctx, db.Pool)
		if err != nil {
			c.Cleanup(ctx)
			return err
		}
		posts, err := postRepo.NewPostgresRepository(ctx, db.Pool)
		if err != nil {
			c.Cleanup(ctx)
			return err
		}
		c.AuthorRepo = authors
		c.PostRepo = posts

	case database.DriverMemory:
		c.DB = database.NewMemoryDB()
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.PostRepo = postRepo.NewMemoryRepository()

	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	log.Info().Str("driver", string(c.Driver)).Msg("repositories initialized")
	return nil
}

func (c *Container) initServices() {
	// Author delete checks posts (restrict); post create resolves authors.
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.PostRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.AuthorRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
}

// Cleanup dọn dẹp resources khi shutdown; gọi nhiều lần vẫn an toàn
func (c *Container) Cleanup(ctx context.Context) {
	if c.DB == nil {
		return
	}

	if err := c.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
	c.DB = nil
	log.Info().Msg("container cleanup completed")
}
