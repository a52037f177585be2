package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/AnshRaj112/keepsake-backend/internal/config"
	"github.com/AnshRaj112/keepsake-backend/internal/database"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Blob namespaces.
const (
	namespacePhotos = "photos"
	namespaceVoice  = "voice"
)

// backends owns every connection opened for the configured adapters.
type backends struct {
	kv     storage.KeyValueStore
	photos storage.BlobStore
	voice  storage.BlobStore

	redis    *redis.Client
	mongo    *mongo.Client
	mongoDB  *mongo.Database
	postgres *sql.DB
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}
	if err := b.connect(ctx, cfg); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.buildKV(cfg); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.buildBlobs(cfg); err != nil {
		b.Close()
		return nil, err
	}
	log.Printf("✅ Storage ready (kv=%s, blobs=%s)", cfg.StorageBackend, cfg.BlobBackend)
	return b, nil
}

func (b *backends) connect(ctx context.Context, cfg *config.Config) error {
	var err error
	if cfg.StorageBackend == config.BackendRedis {
		log.Printf("Connecting to Redis...")
		if b.redis, err = database.ConnectRedis(ctx, cfg.RedisURI); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}
	if cfg.UsesMongo() {
		log.Printf("Connecting to MongoDB...")
		if b.mongo, b.mongoDB, err = database.ConnectMongo(ctx, cfg.MongoURI); err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
	}
	if cfg.UsesPostgres() {
		log.Printf("Connecting to PostgreSQL...")
		if b.postgres, err = database.ConnectPostgres(ctx, cfg.PostgresURI); err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
	}
	return nil
}

func (b *backends) buildKV(cfg *config.Config) error {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Println("⚠️  WARNING: STORAGE_BACKEND=memory, data is lost on restart")
		b.kv = storage.NewMemoryStore(cfg.KeyPrefix, cfg.StorageQuotaBytes)
	case config.BackendRedis:
		b.kv = storage.NewRedisStore(b.redis, cfg.KeyPrefix, cfg.StorageQuotaBytes)
	case config.BackendMongo:
		b.kv = storage.NewMongoStore(b.mongoDB, cfg.KeyPrefix, cfg.StorageQuotaBytes)
	case config.BackendPostgres:
		b.kv = storage.NewPostgresStore(b.postgres, cfg.KeyPrefix, cfg.StorageQuotaBytes)
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	return nil
}

func (b *backends) buildBlobs(cfg *config.Config) error {
	switch cfg.BlobBackend {
	case config.BackendMemory:
		b.photos = storage.NewMemoryBlobStore(namespacePhotos)
		b.voice = storage.NewMemoryBlobStore(namespaceVoice)
	case config.BackendPostgres:
		b.photos = storage.NewPostgresBlobStore(b.postgres, namespacePhotos)
		b.voice = storage.NewPostgresBlobStore(b.postgres, namespaceVoice)
	case config.BackendGridFS:
		photos, err := storage.NewGridFSBlobStore(b.mongoDB, namespacePhotos)
		if err != nil {
			return err
		}
		voice, err := storage.NewGridFSBlobStore(b.mongoDB, namespaceVoice)
		if err != nil {
			return err
		}
		b.photos, b.voice = photos, voice
	case config.BackendCloudinary:
		photos, err := storage.NewCloudinaryBlobStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder, namespacePhotos, storage.CloudinaryImage)
		if err != nil {
			return fmt.Errorf("init cloudinary: %w", err)
		}
		// Cloudinary files audio under the video resource type.
		voice, err := storage.NewCloudinaryBlobStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder, namespaceVoice, storage.CloudinaryVideo)
		if err != nil {
			return fmt.Errorf("init cloudinary: %w", err)
		}
		b.photos, b.voice = photos, voice
		log.Println("✅ Cloudinary service initialized")
	default:
		return fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
	return nil
}

// Close releases every connection; errors are logged.
func (b *backends) Close() {
	if b.redis != nil {
		if err := database.DisconnectRedis(b.redis); err != nil {
			log.Printf("⚠️  Redis disconnect: %v", err)
		}
	}
	if b.mongo != nil {
		if err := database.DisconnectMongo(b.mongo); err != nil {
			log.Printf("⚠️  MongoDB disconnect: %v", err)
		}
	}
	if b.postgres != nil {
		if err := database.DisconnectPostgres(b.postgres); err != nil {
			log.Printf("⚠️  PostgreSQL disconnect: %v", err)
		}
	}
}
