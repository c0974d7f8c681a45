package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"mediassist/internal/adapters/auth/tokens"
	"mediassist/internal/ports/auth"
	"mediassist/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		verifier = tokens.NewVerifier(secret)
	} // sin secret => modo dev (X-Debug-User-ID)

	r := router.NewRouter(router.Options{AuthVerifier: verifier})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
