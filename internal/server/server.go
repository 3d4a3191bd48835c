package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"hireflow/internal/analysis"
	"hireflow/internal/auth"
	"hireflow/internal/billing"
	"hireflow/internal/config"
	"hireflow/internal/email"
	"hireflow/internal/entitlement"
	"hireflow/internal/job"
	"hireflow/internal/plan"
	"hireflow/internal/recruiter"
	"hireflow/internal/subscription"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RequestLoggingMiddleware())

	catalog := plan.Default()
	subsRepo := subscription.NewRepository(db, catalog)
	jobRepo := job.NewRepository(db)
	recruiterRepo := recruiter.NewRepository(db)
	notifier := email.NewNotifier(emailService, recruiterRepo)

	entitlementService := entitlement.NewService(subsRepo, catalog, jobRepo, notifier)
	recruiterService := recruiter.NewService(recruiterRepo, subsRepo, emailService, cfg.JWTSecret, cfg.TrialDays)
	jobService := job.NewService(jobRepo, entitlementService)
	analysisService := analysis.NewService(analysis.NewRepository(db), analysis.NewHeuristicProvider(), entitlementService, jobRepo)
	billingService := billing.NewService(subsRepo, catalog, notifier)

	recruiterHandler := recruiter.NewHandler(recruiterService)
	entitlementHandler := entitlement.NewHandler(entitlementService)
	jobHandler := job.NewHandler(jobService)
	analysisHandler := analysis.NewHandler(analysisService)
	billingHandler := billing.NewHandler(billingService)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", recruiterHandler.Register)
		public.POST("/login", recruiterHandler.Login)
		public.POST("/refresh", recruiterHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", recruiterHandler.GetMe)
		protected.GET("/entitlement", entitlementHandler.GetEntitlement)
		protected.GET("/plans", entitlementHandler.ListPlans)
		protected.GET("/subscription", entitlementHandler.ListRecords)
		protected.POST("/jobs", jobHandler.CreateJob)
		protected.GET("/jobs", jobHandler.ListJobs)
		protected.POST("/jobs/:id/archive", jobHandler.ArchiveJob)
		protected.POST("/analyses", analysisHandler.AnalyzeCV)
		protected.GET("/analyses", analysisHandler.ListAnalyses)
		protected.POST("/matches", analysisHandler.MatchCandidates)
	}

	internal := router.Group("/internal")
	internal.Use(billing.InternalAuth(cfg.BillingToken))
	{
		internal.POST("/billing/events", billingHandler.ApplyEvent)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
