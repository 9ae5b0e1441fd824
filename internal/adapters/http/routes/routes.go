package routes

import (
	"silc-backoffice/internal/adapters/http/handlers"
	"silc-backoffice/internal/adapters/http/middleware"
	"silc-backoffice/internal/adapters/persistence/repositories"
	"silc-backoffice/internal/config"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	productRepo := repositories.NewProductRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	holderRepo := repositories.NewPolicyHolderRepository(db)
	claimRepo := repositories.NewClaimRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg)
	userService := services.NewUserService(userRepo)
	masterService := services.NewMasterService(branchRepo, productRepo)
	agentService := services.NewAgentService(agentRepo)
	holderService := services.NewPolicyHolderService(holderRepo, productRepo)
	claimService := services.NewClaimService(claimRepo, holderRepo)
	loanService := services.NewLoanService(loanRepo, holderRepo)
	paymentService := services.NewPaymentService(paymentRepo, holderRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	masterHandler := handlers.NewMasterHandler(masterService)
	agentHandler := handlers.NewAgentHandler(agentService)
	holderHandler := handlers.NewPolicyHolderHandler(holderService)
	claimHandler := handlers.NewClaimHandler(claimService)
	loanHandler := handlers.NewLoanHandler(loanService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Session restore + route guard, shared by all protected groups
	authGuard := middleware.AuthMiddleware(authService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authGuard)

	// User management routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(authGuard)
	setupUserRoutes(userRoutes, userHandler)

	// Master data routes
	masterRoutes := apiV1.Group("/masters")
	masterRoutes.Use(authGuard)
	setupMasterRoutes(masterRoutes, masterHandler)

	// Agent routes
	agentRoutes := apiV1.Group("/agents")
	agentRoutes.Use(authGuard)
	setupAgentRoutes(agentRoutes, agentHandler)

	// Policy holder routes
	holderRoutes := apiV1.Group("/policy-holders")
	holderRoutes.Use(authGuard)
	setupPolicyHolderRoutes(holderRoutes, holderHandler)

	// KYC document decisions live under their own prefix
	kycRoutes := apiV1.Group("/kyc-documents")
	kycRoutes.Use(authGuard)
	kycRoutes.Post("/:id/verify",
		middleware.RequirePermission(domain.PermVerifyKYC), holderHandler.VerifyDocument)

	// Claim routes
	claimRoutes := apiV1.Group("/claims")
	claimRoutes.Use(authGuard)
	setupClaimRoutes(claimRoutes, claimHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(authGuard)
	setupLoanRoutes(loanRoutes, loanHandler)

	// Premium payment routes
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(authGuard)
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(authGuard)
	dashboardRoutes.Get("/summary", middleware.NoCacheHeaders(),
		middleware.RequirePermission(domain.PermViewReports), dashboardHandler.Summary)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authGuard fiber.Handler) {
	// Public routes (login is rate limited harder than the rest of the API)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", authGuard, middleware.NoCacheHeaders(), handler.Me)
	router.Post("/logout-all", authGuard, handler.LogoutAll)
}

// setupUserRoutes configures console user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Own profile, any authenticated actor
	router.Get("/profile", handler.Profile)
	router.Post("/change-password", handler.ChangePassword)

	// Management requires the manage_users permission; the service layer
	// additionally confines branch admins to their own branch.
	manage := router.Group("")
	manage.Use(middleware.RequirePermission(domain.PermManageUsers))
	manage.Get("/", handler.List)
	manage.Get("/:id", handler.Get)
	manage.Post("/", handler.Create)
	manage.Put("/:id", handler.Update)
	manage.Delete("/:id", handler.Delete)
}

// setupMasterRoutes configures master data routes
func setupMasterRoutes(router fiber.Router, handler *handlers.MasterHandler) {
	// Reads are open to all authenticated actors and cacheable
	router.Get("/branches", middleware.MasterDataCache(), handler.ListBranches)
	router.Get("/products", middleware.MasterDataCache(), handler.ListProducts)

	// Mutations are super admin territory
	branchAdmin := router.Group("")
	branchAdmin.Use(middleware.RequirePermission(domain.PermManageBranches))
	branchAdmin.Post("/branches", handler.CreateBranch)
	branchAdmin.Put("/branches/:id", handler.UpdateBranch)
	branchAdmin.Delete("/branches/:id", handler.DeleteBranch)

	productAdmin := router.Group("")
	productAdmin.Use(middleware.RequirePermission(domain.PermManageConfiguration))
	productAdmin.Post("/products", handler.CreateProduct)
	productAdmin.Put("/products/:id", handler.UpdateProduct)
	productAdmin.Delete("/products/:id", handler.DeleteProduct)
}

// setupAgentRoutes configures agent routes
func setupAgentRoutes(router fiber.Router, handler *handlers.AgentHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermViewAgents), handler.List)

	// Applications before :id so the static segment matches first
	router.Get("/applications",
		middleware.RequirePermission(domain.PermViewAgentApplications), handler.ListApplications)
	router.Post("/applications",
		middleware.RequirePermission(domain.PermManageAgents), handler.SubmitApplication)
	router.Post("/applications/:id/decide",
		middleware.RequirePermission(domain.PermApproveAgents), handler.DecideApplication)

	router.Get("/:id", middleware.RequirePermission(domain.PermViewAgents), handler.Get)
	router.Post("/", middleware.RequirePermission(domain.PermManageAgents), handler.Create)
	router.Put("/:id", middleware.RequirePermission(domain.PermManageAgents), handler.Update)
	router.Delete("/:id", middleware.RequirePermission(domain.PermManageAgents), handler.Delete)
}

// setupPolicyHolderRoutes configures policy holder routes
func setupPolicyHolderRoutes(router fiber.Router, handler *handlers.PolicyHolderHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermViewPolicyHolders), handler.List)
	router.Get("/:id", middleware.RequirePermission(domain.PermViewPolicyHolders), handler.Get)
	router.Post("/", middleware.RequirePermission(domain.PermManagePolicyHolders), handler.Create)
	router.Put("/:id", middleware.RequirePermission(domain.PermManagePolicyHolders), handler.Update)
	router.Delete("/:id", middleware.RequirePermission(domain.PermManagePolicyHolders), handler.Delete)

	// KYC documents
	router.Get("/:id/documents", middleware.RequirePermission(domain.PermViewKYC), handler.ListDocuments)
	router.Post("/:id/documents", middleware.RequirePermission(domain.PermManagePolicyHolders), handler.AddDocument)
}

// setupClaimRoutes configures claim lifecycle routes
func setupClaimRoutes(router fiber.Router, handler *handlers.ClaimHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermViewClaims), handler.List)
	router.Get("/:id", middleware.RequirePermission(domain.PermViewClaims), handler.Get)
	router.Get("/:id/history", middleware.RequirePermission(domain.PermViewClaims), handler.History)
	router.Post("/", middleware.RequirePermission(domain.PermProcessClaims), handler.File)
	router.Post("/:id/review", middleware.RequirePermission(domain.PermProcessClaims), handler.StartReview)
	router.Post("/:id/settle", middleware.RequirePermission(domain.PermProcessClaims), handler.Settle)

	// Final decisions are reserved for super admins
	router.Post("/:id/approve", middleware.RequirePermission(domain.PermApproveClaims), handler.Approve)
	router.Post("/:id/reject", middleware.RequirePermission(domain.PermApproveClaims), handler.Reject)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermViewLoans), handler.List)
	router.Get("/:id", middleware.RequirePermission(domain.PermViewLoans), handler.Get)
	router.Post("/", middleware.RequirePermission(domain.PermManageLoans), handler.Request)
	router.Get("/:id/repayments", middleware.RequirePermission(domain.PermViewLoans), handler.ListRepayments)
	router.Post("/:id/repayments", middleware.RequirePermission(domain.PermManageLoans), handler.RecordRepayment)

	// Final decisions are reserved for super admins
	router.Post("/:id/decide", middleware.RequirePermission(domain.PermApproveLoans), handler.Decide)
}

// setupPaymentRoutes configures premium payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Get("/", middleware.RequirePermission(domain.PermViewPremiums), handler.List)
	router.Get("/:id", middleware.RequirePermission(domain.PermViewPremiums), handler.Get)
	router.Post("/", middleware.RequirePermission(domain.PermCollectPremiums), handler.Collect)
}
