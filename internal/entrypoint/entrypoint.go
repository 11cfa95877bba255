package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/mrlokans/recetario/internal/ai"
	"github.com/mrlokans/recetario/internal/backfill"
	"github.com/mrlokans/recetario/internal/categories"
	"github.com/mrlokans/recetario/internal/config"
	"github.com/mrlokans/recetario/internal/favorites"
	http_controllers "github.com/mrlokans/recetario/internal/http"
	"github.com/mrlokans/recetario/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: handler,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Recetario v%s", version)

	ctx := context.Background()

	// Select the persistence backend once at startup. Remote needs both a
	// Firestore project and a resolved user identity; everything else runs
	// against the device-local database.
	var backend favorites.Backend
	if cfg.RemoteMode() {
		log.Printf("Favorites backend: firestore (project %s, user %s)", cfg.Firestore.ProjectID, cfg.Firestore.UserID)
		remote, err := favorites.NewFirestoreBackend(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, cfg.Firestore.UserID)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore backend: %v", err)
		}
		backend = remote
	} else {
		log.Printf("Favorites backend: local (%s)", cfg.Database.Path)
		local, err := favorites.NewLocalBackend(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to initialize local backend: %v", err)
		}
		backend = local
	}

	store := favorites.NewStore(backend)
	if err := store.Open(ctx); err != nil {
		log.Fatalf("Failed to open favorites store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing favorites store: %v", err)
		}
	}()

	// The AI gateway is optional: without a key the generation endpoints
	// report unavailable and saved favorites keep working.
	var gateway ai.Gateway
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiGateway(ctx, cfg.Gemini.APIKey, cfg.Gemini.TextModel, cfg.Gemini.ImageModel, cfg.Gemini.RateRPS, cfg.Gemini.RateBurst)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini gateway: %v", err)
		}
		gateway = gemini
		defer gemini.Close()
	} else {
		log.Printf("WARNING: GEMINI_API_KEY is not set. Recipe generation and image backfill will be disabled.")
	}

	var backfillService *backfill.Service
	if gateway != nil {
		backfillService = backfill.NewService(gateway, store)
	}

	// Task queue executes image backfill asynchronously.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && backfillService != nil {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		var err error
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewBackfillImageQueue(backfillService),
		)

		backfillService.SetDispatcher(func(recipeName, hint string) error {
			_, err := taskClient.Add(tasks.BackfillImageTask{
				RecipeName: recipeName,
				ImageHint:  hint,
			}).Save()
			return err
		})

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Category cache with scheduled refresh.
	var categoryCache *categories.Cache
	if gateway != nil {
		categoryCache = categories.NewCache(gateway, cfg.Categories.Count)
		if cfg.Categories.RefreshEnabled {
			if err := categoryCache.Start(ctx, cfg.Categories.RefreshSchedule); err != nil {
				log.Printf("WARNING: category refresh scheduler disabled: %v", err)
			}
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:      store,
		Backfill:   backfillService,
		Gateway:    gateway,
		Categories: categoryCache,
		Version:    version,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	onShutdown := func(ctx context.Context) {
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if categoryCache != nil {
			categoryCache.Stop()
		}
	}

	Serve(corsHandler, cfg, onShutdown)
}
