package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"taskboard/internal/config"
	"taskboard/internal/serverapp"
)

func main() {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	handler, err := serverapp.NewHandler(context.Background(), serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
