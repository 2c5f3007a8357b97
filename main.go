// VG Direct is the backend for a video-game discussion platform: accounts
// and JWT auth, user profiles, forum posts with genre tags, threaded
// comments, game ratings and reviews, and a proxied external game catalog.
//
// @title VG Direct API
// @version 1.0
// @description Backend API for the VG Direct video game discussion platform.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
	"github.com/user/vgdirect-go/background"
	"github.com/user/vgdirect-go/catalog"
	"github.com/user/vgdirect-go/comments"
	"github.com/user/vgdirect-go/config"
	"github.com/user/vgdirect-go/db"
	_ "github.com/user/vgdirect-go/docs" // Generated Swagger docs
	"github.com/user/vgdirect-go/forum"
	"github.com/user/vgdirect-go/genres"
	"github.com/user/vgdirect-go/ratings"
	"github.com/user/vgdirect-go/reviews"
	"github.com/user/vgdirect-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appPool, syncPool, err := db.NewDBPools(cfg.DBPools)
	if err != nil {
		log.Fatalf("Failed to create database pools: %v", err)
	}
	defer appPool.Close()
	defer syncPool.Close()

	// pg_trgm must exist before the migrations create trigram indexes.
	if err := db.EnableExtensions(syncPool); err != nil {
		log.Fatalf("Failed to enable extensions: %v", err)
	}
	if err := db.RunMigrations(cfg.DBPools.SyncPool, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rawgClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey)
	catalogService := catalog.NewCatalogService(appPool, rawgClient)
	catalogHandler := catalog.NewCatalogHandler(catalogService)

	// The sync worker uses its own pool so catalog imports never starve
	// request handling.
	syncCatalogService := catalog.NewCatalogService(syncPool, rawgClient)
	syncStopChan := make(chan struct{})
	if cfg.Catalog.SyncEnabled {
		background.StartCatalogSyncService(syncCatalogService, cfg.Catalog, syncStopChan)
	}

	authService := auth.NewAuthService(appPool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(appPool, cfg.Auth.BcryptCost)
	userHandler := users.NewUserHandler(userService)

	commentService := comments.NewCommentService(appPool)
	commentHandler := comments.NewCommentHandler(commentService)

	forumService := forum.NewForumService(appPool, commentService)
	forumHandler := forum.NewForumHandler(forumService, commentService)

	genreService := genres.NewGenreService(appPool)
	genreHandler := genres.NewGenreHandler(genreService)

	ratingService := ratings.NewRatingService(appPool, catalogService)
	ratingHandler := ratings.NewRatingHandler(ratingService)

	reviewService := reviews.NewReviewService(appPool, catalogService)
	reviewHandler := reviews.NewReviewHandler(reviewService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		userHandler.RegisterRoutes(r)
	})

	r.Route("/api/forum-posts", func(r chi.Router) {
		forumHandler.RegisterRoutes(r)
	})

	r.Route("/api/genres", func(r chi.Router) {
		genreHandler.RegisterRoutes(r)
	})

	r.Route("/api/comments", func(r chi.Router) {
		commentHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			commentHandler.RegisterProtectedRoutes(r)
		})
	})

	r.Route("/api/ratings", func(r chi.Router) {
		ratingHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			ratingHandler.RegisterProtectedRoutes(r)
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		reviewHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			reviewHandler.RegisterProtectedRoutes(r)
		})
	})

	r.Route("/api/games", func(r chi.Router) {
		catalogHandler.RegisterGameRoutes(r)
	})

	r.Route("/api/search", func(r chi.Router) {
		catalogHandler.RegisterSearchRoutes(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperror.NewNotFoundError("Route not found", nil))
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(syncStopChan)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery and not-found
// handlers, kept here to avoid pulling handler packages into main's error
// path.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
