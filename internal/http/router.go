package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vyapar-backend/internal/handlers"
	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Workers   *handlers.WorkerHandler
	Perms     *handlers.PermissionHandler
	Credits   *handlers.CreditHandler
	Payments  *handlers.PaymentHandler
	Sales     *handlers.SaleHandler
	Products  *handlers.ProductHandler
	Expenses  *handlers.ExpenseHandler
	Customers *handlers.CustomerHandler
	Settings  *handlers.SettingsHandler
	Reports   *handlers.ReportHandler
	TOTP      *handlers.TOTPHandler
	Razorpay  *handlers.RazorpayHandler
	Health    *handlers.HealthHandler
	WS        *handlers.WSHandler
}

// NewRouter wires all routes with their middleware. Worker routes carry a
// per-feature permission gate on top of authentication; clients also hide
// disallowed views, but the server is the authority.
func NewRouter(h *Handlers, authenticate func(http.Handler) http.Handler, checker middleware.PermissionChecker) *mux.Router {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/health/live", h.Health.Live).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.Detailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/auth/verify-totp", h.Auth.VerifyTOTP).Methods("POST")
	r.HandleFunc("/api/razorpay/webhook", h.Razorpay.Webhook).Methods("POST")
	r.HandleFunc("/ws", h.WS.Serve).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(authenticate))

	gate := func(feature, action string) mux.MiddlewareFunc {
		return mux.MiddlewareFunc(middleware.RequirePermission(checker, feature, action))
	}

	// Any authenticated user
	api.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	api.HandleFunc("/permissions/me", h.Perms.MyMatrix).Methods("GET")

	// Admin-only: worker accounts, permissions, settings, online payments, 2FA
	admin := api.NewRoute().Subrouter()
	admin.Use(mux.MiddlewareFunc(middleware.RequireAdmin))
	admin.HandleFunc("/workers", h.Workers.Create).Methods("POST")
	admin.HandleFunc("/workers", h.Workers.List).Methods("GET")
	admin.HandleFunc("/workers/{id:[0-9]+}", h.Workers.Update).Methods("PUT")
	admin.HandleFunc("/workers/{id:[0-9]+}", h.Workers.Delete).Methods("DELETE")
	admin.HandleFunc("/workers/{id:[0-9]+}/active", h.Workers.SetActive).Methods("PUT")
	admin.HandleFunc("/workers/{id:[0-9]+}/permissions", h.Perms.GetMatrix).Methods("GET")
	admin.HandleFunc("/workers/{id:[0-9]+}/permissions", h.Perms.UpdateMatrix).Methods("PUT")
	admin.HandleFunc("/settings", h.Settings.List).Methods("GET")
	admin.HandleFunc("/settings/logo", h.Settings.UploadLogo).Methods("POST")
	admin.HandleFunc("/settings/{key}", h.Settings.Get).Methods("GET")
	admin.HandleFunc("/settings/{key}", h.Settings.Update).Methods("PUT")
	admin.HandleFunc("/razorpay/orders", h.Razorpay.CreateOrder).Methods("POST")
	admin.HandleFunc("/totp/setup", h.TOTP.Setup).Methods("POST")
	admin.HandleFunc("/totp/enable", h.TOTP.Enable).Methods("POST")
	admin.HandleFunc("/totp/disable", h.TOTP.Disable).Methods("POST")

	// Credits
	api.Handle("/credits", gate(models.FeatureCredits, models.ActionCreate)(http.HandlerFunc(h.Credits.Create))).Methods("POST")
	api.Handle("/credits", gate(models.FeatureCredits, models.ActionView)(http.HandlerFunc(h.Credits.List))).Methods("GET")
	api.Handle("/credits/ledger", gate(models.FeatureCredits, models.ActionView)(http.HandlerFunc(h.Credits.CustomerLedger))).Methods("GET")
	api.Handle("/credits/summary", gate(models.FeatureCredits, models.ActionView)(http.HandlerFunc(h.Credits.Summary))).Methods("GET")
	api.Handle("/credits/{id:[0-9]+}", gate(models.FeatureCredits, models.ActionView)(http.HandlerFunc(h.Credits.Get))).Methods("GET")
	api.Handle("/credits/{id:[0-9]+}", gate(models.FeatureCredits, models.ActionEdit)(http.HandlerFunc(h.Credits.Update))).Methods("PUT")
	api.Handle("/credits/{id:[0-9]+}", gate(models.FeatureCredits, models.ActionDelete)(http.HandlerFunc(h.Credits.Delete))).Methods("DELETE")
	api.Handle("/credits/{id:[0-9]+}/payments", gate(models.FeatureCredits, models.ActionEdit)(http.HandlerFunc(h.Credits.RecordPayment))).Methods("POST")
	api.Handle("/credits/{id:[0-9]+}/payments", gate(models.FeatureCredits, models.ActionView)(http.HandlerFunc(h.Credits.Payments))).Methods("GET")

	// Payments
	api.Handle("/payments/preview", gate(models.FeaturePayments, models.ActionView)(http.HandlerFunc(h.Payments.Preview))).Methods("POST")
	api.Handle("/payments/receive", gate(models.FeaturePayments, models.ActionCreate)(http.HandlerFunc(h.Payments.Receive))).Methods("POST")
	api.Handle("/payments", gate(models.FeaturePayments, models.ActionView)(http.HandlerFunc(h.Payments.History))).Methods("GET")

	// Sales
	api.Handle("/sales", gate(models.FeatureSales, models.ActionCreate)(http.HandlerFunc(h.Sales.Create))).Methods("POST")
	api.Handle("/sales", gate(models.FeatureSales, models.ActionView)(http.HandlerFunc(h.Sales.List))).Methods("GET")
	api.Handle("/sales/by-number", gate(models.FeatureSales, models.ActionView)(http.HandlerFunc(h.Sales.GetByNumber))).Methods("GET")
	api.Handle("/sales/{id:[0-9]+}", gate(models.FeatureSales, models.ActionView)(http.HandlerFunc(h.Sales.Get))).Methods("GET")
	api.Handle("/sales/{id:[0-9]+}", gate(models.FeatureSales, models.ActionDelete)(http.HandlerFunc(h.Sales.Delete))).Methods("DELETE")
	api.Handle("/sales/{id:[0-9]+}/pdf", gate(models.FeatureSales, models.ActionView)(http.HandlerFunc(h.Sales.InvoicePDF))).Methods("GET")

	// Products
	api.Handle("/products", gate(models.FeatureProducts, models.ActionCreate)(http.HandlerFunc(h.Products.Create))).Methods("POST")
	api.Handle("/products", gate(models.FeatureProducts, models.ActionView)(http.HandlerFunc(h.Products.List))).Methods("GET")
	api.Handle("/products/{id:[0-9]+}", gate(models.FeatureProducts, models.ActionView)(http.HandlerFunc(h.Products.Get))).Methods("GET")
	api.Handle("/products/{id:[0-9]+}", gate(models.FeatureProducts, models.ActionEdit)(http.HandlerFunc(h.Products.Update))).Methods("PUT")
	api.Handle("/products/{id:[0-9]+}", gate(models.FeatureProducts, models.ActionDelete)(http.HandlerFunc(h.Products.Delete))).Methods("DELETE")

	// Expenses
	api.Handle("/expenses", gate(models.FeatureExpenses, models.ActionCreate)(http.HandlerFunc(h.Expenses.Create))).Methods("POST")
	api.Handle("/expenses", gate(models.FeatureExpenses, models.ActionView)(http.HandlerFunc(h.Expenses.List))).Methods("GET")
	api.Handle("/expenses/summary", gate(models.FeatureExpenses, models.ActionView)(http.HandlerFunc(h.Expenses.SummaryByCategory))).Methods("GET")
	api.Handle("/expenses/{id:[0-9]+}", gate(models.FeatureExpenses, models.ActionEdit)(http.HandlerFunc(h.Expenses.Update))).Methods("PUT")
	api.Handle("/expenses/{id:[0-9]+}", gate(models.FeatureExpenses, models.ActionDelete)(http.HandlerFunc(h.Expenses.Delete))).Methods("DELETE")

	// Customers
	api.Handle("/customers", gate(models.FeatureCustomers, models.ActionCreate)(http.HandlerFunc(h.Customers.Create))).Methods("POST")
	api.Handle("/customers", gate(models.FeatureCustomers, models.ActionView)(http.HandlerFunc(h.Customers.List))).Methods("GET")
	api.Handle("/customers/search", gate(models.FeatureCustomers, models.ActionView)(http.HandlerFunc(h.Customers.Search))).Methods("GET")
	api.Handle("/customers/{id:[0-9]+}", gate(models.FeatureCustomers, models.ActionView)(http.HandlerFunc(h.Customers.Get))).Methods("GET")
	api.Handle("/customers/{id:[0-9]+}", gate(models.FeatureCustomers, models.ActionEdit)(http.HandlerFunc(h.Customers.Update))).Methods("PUT")
	api.Handle("/customers/{id:[0-9]+}", gate(models.FeatureCustomers, models.ActionDelete)(http.HandlerFunc(h.Customers.Delete))).Methods("DELETE")

	// Reports
	api.Handle("/reports/summary", gate(models.FeatureReports, models.ActionView)(http.HandlerFunc(h.Reports.Summary))).Methods("GET")

	return r
}
