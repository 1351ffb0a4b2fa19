package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "github.com/RoshanKumar487/profitlens/internal/adapters/web"
	"github.com/RoshanKumar487/profitlens/internal/ai"
	"github.com/RoshanKumar487/profitlens/internal/app"
	"github.com/RoshanKumar487/profitlens/internal/core"
	"github.com/RoshanKumar487/profitlens/internal/db"
	"github.com/RoshanKumar487/profitlens/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.Pool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	rdb, err := db.Redis(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer rdb.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set")
	}
	assistant := ai.NewAssistant(apiKey)

	svc := app.NewAppService(app.Services{
		Employees: core.NewEmployeeService(pool),
		Invoices:  core.NewInvoiceService(pool),
		Expenses:  core.NewExpenseService(pool),
		Revenue:   core.NewRevenueService(pool),
		Companies: core.NewCompanyService(pool),
		Users:     core.NewUserService(pool),
		Access:    core.NewAccessRequestService(pool),
		QuickRev:  core.NewQuickRevenueService(rdb),
		Summaries: core.NewSummaryService(pool),
	}, assistant)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
