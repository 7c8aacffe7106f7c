package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"valleycars/internal/cache"
	intconfig "valleycars/internal/config"
	intdb "valleycars/internal/db"
	router "valleycars/internal/http"
	h "valleycars/internal/http/handlers"
	"valleycars/internal/pricing"
	"valleycars/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.JWTSecret == "" && env.AdminAPIToken == "" {
		log.Println("warning: neither JWT_SECRET nor ADMIN_API_TOKEN is set; admin routes will reject every request")
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 15*time.Second)
	if err := intdb.EnsureSchema(bootCtx, db); err != nil {
		cancelBoot()
		log.Fatalf("schema setup failed: %v", err)
	}

	auth := services.AuthService{
		DB:            db,
		JWTSecret:     env.JWTSecret,
		JWTIssuer:     env.JWTIssuer,
		JWTTTL:        env.JWTTTL,
		AdminAPIToken: env.AdminAPIToken,
	}
	if err := auth.EnsureAdmin(bootCtx, "", env.AdminEmail, env.AdminPassword); err != nil {
		log.Printf("warning: could not seed admin user: %v", err)
	}
	cancelBoot()

	rdb := intconfig.ConnectRedis(env)
	if rdb != nil {
		defer rdb.Close()
	}

	r := router.NewRouter(env, h.Deps{
		DB:              db,
		Rules:           cache.NewRuleCache(rdb, env.RedisRulesTTL),
		Area:            pricing.NewServiceArea(env.ServiceAreaPins),
		StrictRuleSigns: env.StrictRuleSigns,
		WhatsAppNumber:  env.WhatsAppNumber,
		Auth:            auth,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
