package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/auth"
	"github.com/junaidrashid-git/biryani-house/backup"
	"github.com/junaidrashid-git/biryani-house/checkout"
	"github.com/junaidrashid-git/biryani-house/config"
	qrcontroller "github.com/junaidrashid-git/biryani-house/controllers/qr"
	userControllers "github.com/junaidrashid-git/biryani-house/controllers/user"
	"github.com/junaidrashid-git/biryani-house/logger"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/junaidrashid-git/biryani-house/orders"
	"github.com/junaidrashid-git/biryani-house/routes"
	"github.com/junaidrashid-git/biryani-house/session"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Environment: cfg.Environment})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("db connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Order{},
		&models.QRFile{},
	); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	var verifier auth.TokenVerifier
	if cfg.FirebaseEnabled() {
		var client *fbauth.Client
		client, err = auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID)
		if err != nil {
			log.Fatal("firebase init failed", zap.Error(err))
		}
		verifier = client
	} else {
		log.Warn("firebase not configured, Google sign-in disabled")
	}

	orderStore := orders.NewGormStore(db)
	submitter := orders.NewAdapter(orderStore, log)
	validator := checkout.NewContactValidator()

	sessions := session.NewRegistry(func(id string) *checkout.Flow {
		return checkout.NewFlow(checkout.Params{
			Owner:         id,
			Validator:     validator,
			Submitter:     submitter,
			Logger:        log,
			SubmitTimeout: cfg.SubmitTimeout,
		})
	})
	sessions.Subscribe(func(e session.Event) {
		log.Info("session "+string(e.Kind), zap.String("session", e.SessionID), zap.Int("live", sessions.Len()))
	})
	go pruneSessions(ctx, sessions, cfg.SessionTTL, log)

	qrStore := qrcontroller.NewGormStore(db)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(log))
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadsDir)

	routes.SetupRoutes(r, routes.Deps{
		Auth: &auth.Service{
			Users:     auth.NewGormUserStore(db),
			Verifier:  verifier,
			ProjectID: cfg.FirebaseProjectID,
			Sessions:  sessions,
			Secret:    cfg.JWTSecret,
			Logger:    log.Named("auth"),
		},
		Sessions:  sessions,
		Orders:    orderStore,
		QRFiles:   qrStore,
		Users:     userControllers.NewGormStore(db),
		PaymentQR: qrcontroller.PaymentQRURL(qrStore, cfg.PaymentQRURL),
		JWTSecret: cfg.JWTSecret,
		APIKey:    cfg.AdminAPIKey,
		UploadDir: cfg.UploadsDir,
		PublicURL: cfg.PublicBaseURL,
		Logger:    log,
	})

	// Back up uploads at 2 AM daily.
	sched := &backup.Scheduler{
		SrcDir:    cfg.UploadsDir,
		BackupDir: cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      2,
		Logger:    log.Named("backup"),
	}
	go sched.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SubmitTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func pruneSessions(ctx context.Context, sessions *session.Registry, ttl time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.PruneIdle(ttl); n > 0 {
				log.Info("pruned idle sessions", zap.Int("count", n))
			}
		}
	}
}
