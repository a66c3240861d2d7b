package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/realmcrm/backend/internal/infrastructure"
	httpapi "github.com/realmcrm/backend/internal/interfaces/http"
	"github.com/realmcrm/backend/internal/repository"
	"github.com/realmcrm/backend/internal/usecases"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := infrastructure.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to PostgreSQL
	pgClient, err := infrastructure.NewPostgresClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	// Initialize Repositories
	userRepo := repository.NewUserRepository(pgClient.DB)
	tenantRepo := repository.NewTenantRepository(pgClient.DB)
	leadRepo := repository.NewLeadRepository(pgClient.DB)
	activityRepo := repository.NewActivityRepository(pgClient.DB)
	dashboardRepo := repository.NewDashboardRepository(pgClient.DB)

	// Initialize Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, tenantRepo, cfg.JWTSecret, cfg.TokenTTL)

	// Ensure Demo Tenant
	if err := authUsecase.EnsureDemoTenant(context.Background()); err != nil {
		log.Printf("Warning: Failed to seed demo tenant: %v", err)
	}

	authMiddleware := httpapi.NewMiddleware(cfg.JWTSecret)
	handler := httpapi.NewHandler(authUsecase, leadRepo, activityRepo, dashboardRepo, userRepo)

	// Setup HTTP server
	r := gin.Default()
	httpapi.SetupRoutes(r, handler, authMiddleware)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("FAILED to start HTTP Server: %v", err)
	}
}
