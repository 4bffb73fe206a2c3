package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Jaaccob/SagaApp/config"
	pginfra "github.com/Jaaccob/SagaApp/internal/infrastructure/postgres"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

// seed applies migrations and makes sure every system role exists.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	roles := pginfra.NewRoleRepository(pool)
	inserted, err := roles.EnsureSystemRoles(ctx)
	if err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	all, err := roles.FindAll(ctx)
	if err != nil {
		log.Fatalf("failed to list roles: %v", err)
	}

	fmt.Printf("system roles ensured: inserted=%d total=%d\n", inserted, len(all))
	for _, r := range all {
		fmt.Printf("  %s %s\n", r.ID, r.Name)
	}
}
