package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"vyapar-backend/internal/auth"
	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/config"
	"vyapar-backend/internal/database"
	"vyapar-backend/internal/db"
	"vyapar-backend/internal/handlers"
	"vyapar-backend/internal/health"
	vhttp "vyapar-backend/internal/http"
	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/monitoring"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/services"
	"vyapar-backend/internal/storage"
	"vyapar-backend/internal/timeutil"
	"vyapar-backend/migrations"
)

func main() {
	var (
		portFlag       = flag.Int("port", 0, "override the HTTP port")
		monitoringPort = flag.Int("monitoring-port", 9090, "port for the monitoring server")
		skipMigrations = flag.Bool("skip-migrations", false, "do not run database migrations on startup")
	)
	flag.Parse()

	cfg := config.Load()
	if *portFlag > 0 {
		cfg.Server.Port = *portFlag
	}

	pool := db.Connect(cfg)
	defer pool.Close()
	log.Printf("[Database] Connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	if !*skipMigrations {
		migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := migrator.RunMigrations(ctx); err != nil {
			cancel()
			log.Fatalf("[Database] Migrations failed: %v", err)
		}
		cancel()
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Not available, continuing without cache: %v", err)
	} else {
		log.Println("[Redis] Connected")
	}

	r2, err := storage.NewR2Client(cfg)
	if err != nil {
		log.Fatalf("[Storage] %v", err)
	}
	if r2 == nil {
		log.Println("[Storage] R2 not configured, logo upload disabled")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	creditRepo := repositories.NewCreditRepository(pool)
	creditTxnRepo := repositories.NewCreditTransactionRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	ledgerRepo := repositories.NewPaymentLedgerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	permRepo := repositories.NewWorkerPermissionRepository(pool)
	settingRepo := repositories.NewAppSettingRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)
	onlineTxnRepo := repositories.NewOnlineTransactionRepository(pool)

	hub := realtime.NewHub()

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, permRepo, auditRepo, jwtManager)
	permService := services.NewPermissionService(permRepo, userRepo, auditRepo)
	creditService := services.NewCreditService(creditRepo, creditTxnRepo, customerRepo)
	ledgerService := services.NewLedgerService(creditRepo, creditTxnRepo, saleRepo, ledgerRepo)
	paymentService := services.NewPaymentService(saleRepo, ledgerRepo)
	saleService := services.NewSaleService(saleRepo, customerRepo)
	productService := services.NewProductService(productRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	customerService := services.NewCustomerService(customerRepo)
	settingsService := services.NewSettingsService(settingRepo, r2)
	totpService := services.NewTOTPService(userRepo, auditRepo, jwtManager, cfg.JWT.Issuer)
	razorpayService := services.NewRazorpayService(cfg, onlineTxnRepo, paymentService, hub)
	reportService := services.NewReportService(saleRepo, creditRepo, expenseRepo, settingRepo)

	checker := health.NewChecker(pool)

	// Handlers
	h := &vhttp.Handlers{
		Auth:      handlers.NewAuthHandler(userService, totpService),
		Workers:   handlers.NewWorkerHandler(userService, hub),
		Perms:     handlers.NewPermissionHandler(permService, hub),
		Credits:   handlers.NewCreditHandler(creditService, ledgerService, hub),
		Payments:  handlers.NewPaymentHandler(paymentService, hub),
		Sales:     handlers.NewSaleHandler(saleService, reportService, hub),
		Products:  handlers.NewProductHandler(productService, hub),
		Expenses:  handlers.NewExpenseHandler(expenseService, hub),
		Customers: handlers.NewCustomerHandler(customerService, hub),
		Settings:  handlers.NewSettingsHandler(settingsService, hub),
		Reports:   handlers.NewReportHandler(reportService),
		TOTP:      handlers.NewTOTPHandler(totpService),
		Razorpay:  handlers.NewRazorpayHandler(razorpayService, hub),
		Health:    handlers.NewHealthHandler(checker),
		WS:        handlers.NewWSHandler(hub, jwtManager),
	}

	router := vhttp.NewRouter(h, middleware.Authenticate(jwtManager), permService)

	// Middleware chain, outermost first
	handler := middleware.PanicRecovery(
		middleware.Metrics(
			middleware.CORS(cfg)(router)))

	// Monitoring server on its own port
	go func() {
		if err := monitoring.NewServer(pool, *monitoringPort).Start(); err != nil {
			log.Printf("[Monitoring] Server stopped: %v", err)
		}
	}()

	// Periodic overdue refresh keeps the status cache honest for credits
	// whose due date passed with no write in between
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := creditRepo.RefreshOverdueStatuses(ctx, timeutil.Now()); err != nil {
				log.Printf("[Credits] Overdue refresh failed: %v", err)
			} else if n > 0 {
				log.Printf("[Credits] Marked %d credit(s) overdue", n)
			}
			cancel()
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
