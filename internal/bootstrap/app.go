package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"consultant-backend/internal/documents"
	"consultant-backend/internal/services/health"
	"consultant-backend/internal/shared/config"
	"consultant-backend/internal/shared/server"
	"consultant-backend/internal/shared/storage/object"
	localstore "consultant-backend/internal/shared/storage/object/local"
	miniostore "consultant-backend/internal/shared/storage/object/minio"
	s3store "consultant-backend/internal/shared/storage/object/s3"
	"consultant-backend/internal/shared/telemetry"
)

// App holds the process-wide dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Store            object.ObjectStore
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
	Health           *health.Service
}

// Build validates cfg, constructs the object store it selects and wires the
// upload service and router around it.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "s3"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := buildStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	docSvc := documents.NewService(store, cfg.UploadTempDir)
	docHandler := documents.NewHandler(docSvc, cfg.MaxUploadBytes)
	healthSvc := health.NewService(cfg.Env, cfg.ObjectStoreType)

	app := &App{
		Config:           cfg,
		Store:            store,
		DocumentsService: docSvc,
		DocumentsHandler: docHandler,
		Health:           healthSvc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          healthSvc,
		DocumentHandler: docHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"doc_location": cfg.DocLocation,
	})
	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, s3store.Options{
			EndpointURL:  cfg.StorageEndpointURL,
			Region:       cfg.StorageRegion,
			Bucket:       cfg.StorageBucket,
			AccessKey:    cfg.StorageAccessKey,
			SecretKey:    cfg.StorageSecretKey,
			UsePathStyle: cfg.StorageUsePathStyle,
			KMSKeyID:     cfg.SSEKMSKeyID,
			DocLocation:  cfg.DocLocation,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	case "minio":
		store, err := miniostore.New(miniostore.Options{
			EndpointURL: cfg.StorageEndpointURL,
			Region:      cfg.StorageRegion,
			Bucket:      cfg.StorageBucket,
			AccessKey:   cfg.StorageAccessKey,
			SecretKey:   cfg.StorageSecretKey,
			DocLocation: cfg.DocLocation,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio store: %w", err)
		}
		return store, nil
	case "local":
		store, err := localstore.New(cfg.LocalStoreDir, cfg.DocLocation)
		if err != nil {
			return nil, fmt.Errorf("init local store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported OBJECT_STORE %q", cfg.ObjectStoreType)
	}
}
