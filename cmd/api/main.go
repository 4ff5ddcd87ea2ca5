package main

import (
	"fmt"
	"net/http"
	"time"

	"database/sql"

	"github.com/avetrov/finance-service/internal/config"
	"github.com/avetrov/finance-service/internal/database"
	"github.com/avetrov/finance-service/internal/handler"
	"github.com/avetrov/finance-service/internal/integrations/ecb"
	"github.com/avetrov/finance-service/internal/middleware"
	"github.com/avetrov/finance-service/internal/repository"
	"github.com/avetrov/finance-service/internal/scheduler"
	"github.com/avetrov/finance-service/internal/service"
	"github.com/avetrov/finance-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	rates := ecb.NewClient(cfg, logger)
	svc := service.NewService(repo, rates, logger, cfg)
	h := handler.NewHandler(svc, logger)
	mail := email.NewSender(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	authRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	authRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	authRouter.HandleFunc("/budgets/report", h.BudgetReport).Methods("GET")
	authRouter.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods("PUT")
	authRouter.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods("DELETE")

	authRouter.HandleFunc("/recurring/generate", h.GenerateRecurring).Methods("POST")
	authRouter.HandleFunc("/recurring/{kind}", h.CreateRecurringItem).Methods("POST")
	authRouter.HandleFunc("/recurring/{kind}", h.ListRecurringItems).Methods("GET")
	authRouter.HandleFunc("/recurring/{kind}/{id}", h.UpdateRecurringItem).Methods("PUT")
	authRouter.HandleFunc("/recurring/{kind}/{id}", h.DeleteRecurringItem).Methods("DELETE")
	authRouter.HandleFunc("/recurring/{kind}/{id}/record", h.RecordRecurringNow).Methods("POST")

	authRouter.HandleFunc("/installments", h.CreateInstallment).Methods("POST")
	authRouter.HandleFunc("/installments", h.ListInstallments).Methods("GET")
	authRouter.HandleFunc("/installments/refresh", h.RefreshInstallmentStatuses).Methods("POST")
	authRouter.HandleFunc("/installments/{id}/pay", h.PayInstallment).Methods("POST")
	authRouter.HandleFunc("/installments/{id}", h.DeleteInstallment).Methods("DELETE")

	authRouter.HandleFunc("/assets", h.CreateAsset).Methods("POST")
	authRouter.HandleFunc("/assets", h.ListAssets).Methods("GET")
	authRouter.HandleFunc("/assets/{id}", h.UpdateAsset).Methods("PUT")
	authRouter.HandleFunc("/assets/{id}", h.DeleteAsset).Methods("DELETE")

	authRouter.HandleFunc("/liabilities", h.CreateLiability).Methods("POST")
	authRouter.HandleFunc("/liabilities", h.ListLiabilities).Methods("GET")
	authRouter.HandleFunc("/liabilities/{id}", h.UpdateLiability).Methods("PUT")
	authRouter.HandleFunc("/liabilities/{id}", h.DeleteLiability).Methods("DELETE")

	authRouter.HandleFunc("/portfolio", h.CreateHolding).Methods("POST")
	authRouter.HandleFunc("/portfolio", h.ListHoldings).Methods("GET")
	authRouter.HandleFunc("/portfolio/valuation", h.PortfolioValuation).Methods("GET")
	authRouter.HandleFunc("/portfolio/{id}", h.UpdateHolding).Methods("PUT")
	authRouter.HandleFunc("/portfolio/{id}", h.DeleteHolding).Methods("DELETE")

	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")

	authRouter.HandleFunc("/calendar", h.BillsCalendar).Methods("GET")
	authRouter.HandleFunc("/reports/summary", h.MonthlySummary).Methods("GET")
	authRouter.HandleFunc("/reports/burden", h.InstallmentBurden).Methods("GET")
	authRouter.HandleFunc("/reports/networth", h.NetWorth).Methods("GET")

	// Start scheduler
	if cfg.SchedulerEnabled {
		sched := scheduler.New(svc, repo, mail, logger)
		if err := sched.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
