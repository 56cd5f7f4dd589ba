package main

import (
	"fmt"
	"log"

	"panel-usuarios/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	userStore := core.NewFileUserStore(cfg.UsersFile)
	authService := core.NewTableAuthService(userStore)

	// Sessions live in process memory; restarting drops them all.
	sessionStore := core.NewSessionStore()

	// Login metrics are optional: without Redis the dashboard runs the same,
	// it just has no /api/metrics data.
	var metrics *core.LoginMetrics
	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, login metrics disabled: %v", err)
		} else {
			defer redisClient.Close()
			metrics = core.NewLoginMetrics(redisClient)
		}
	}

	router := core.NewRouter(cfg, sessionStore, authService, userStore, metrics)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting dashboard server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
