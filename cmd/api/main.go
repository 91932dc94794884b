package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"giftlist/internal/adapter/api"
	"giftlist/internal/adapter/api/handler"
	apimiddleware "giftlist/internal/adapter/api/middleware"
	"giftlist/internal/adapter/api/router"
	"giftlist/internal/adapter/repository"
	"giftlist/internal/adapter/repository/memory"
	domainrepo "giftlist/internal/domain/repository"
	"giftlist/internal/infrastructure/firebase"
	"giftlist/internal/infrastructure/metrics"
	"giftlist/internal/infrastructure/qrcode"
	"giftlist/internal/infrastructure/ratelimit"
	"giftlist/internal/infrastructure/storage"
	"giftlist/internal/usecase"
	"giftlist/pkg/config"
	"giftlist/pkg/logger"
	"giftlist/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger().Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := credentialOptions(cfg)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Logger().Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Logger().Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	var (
		userRepo         domainrepo.UserRepository
		wishlistRepo     domainrepo.WishlistRepository
		contributionRepo domainrepo.ContributionRepository
	)

	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using the in-memory store: data is lost on restart")
		store := memory.NewStore()
		userRepo = store.Users()
		wishlistRepo = store.Wishlists()
		contributionRepo = store.Contributions()
	default:
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			logger.Logger().Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		userRepo = repository.NewFirestoreUserRepository(firestoreClient)
		wishlistRepo = repository.NewFirestoreWishlistRepository(firestoreClient)
		contributionRepo = repository.NewFirestoreContributionRepository(firestoreClient)
	}

	var publisher usecase.CodePublisher
	if cfg.QRStorageBucket != "" {
		qrPublisher, err := storage.NewQRPublisher(ctx, cfg.QRStorageBucket, opts...)
		if err != nil {
			logger.Logger().Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer qrPublisher.Close()
		publisher = qrPublisher
	}

	renderer := qrcode.NewRenderer(cfg.QRCodeSize, cfg.QRCodeMargin)
	m := metrics.New()

	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, userRepo, renderer, publisher, m, usecase.WishlistConfig{
		DeepLinkScheme:        cfg.DeepLinkScheme,
		SingleWishlistPerUser: cfg.SingleWishlistPerUser,
	})
	contributionUseCase := usecase.NewContributionUseCase(contributionRepo, m)
	userUseCase := usecase.NewUserUseCase(userRepo, renderer, cfg.DeepLinkScheme)
	friendUseCase := usecase.NewFriendUseCase(userRepo, m, cfg.DeepLinkScheme)

	handler.Setup(userUseCase, wishlistUseCase, contributionUseCase, friendUseCase)

	contributePolicy := ratelimit.PerMinute(cfg.ContributeRateLimit)
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		router.ContributeAction: contributePolicy,
	}, contributePolicy)
	limiter.StartCleanupRoutine(ctx.Done())

	e := echo.New()
	e.HideBanner = true

	ipExtractor, err := router.ClientIPExtractor(cfg.TrustedProxies)
	if err != nil {
		logger.Logger().Fatalf("Failed to configure client IP extraction: %v", err)
	}
	e.IPExtractor = ipExtractor

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Metrics(m))

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	authMiddleware := apimiddleware.NewAuthMiddleware(firebase.NewFirebaseAuthClient(authClient))
	router.Setup(e, authMiddleware, limiter, m)

	go func() {
		logger.Info("Starting server on port %s (store: %s)", cfg.ServerPort, cfg.StoreBackend)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Logger().Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal, draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// credentialOptions prefers inline service account JSON, then a key file,
// then application default credentials.
func credentialOptions(cfg *config.Config) []option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}
	}

	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
			logger.Logger().Fatalf("Service account file does not exist: %s", cfg.FirebaseServiceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}
	}

	logger.Info("Using application default credentials")
	return nil
}
