package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sportsmind/athlete-mind-meter/docs"
	"github.com/sportsmind/athlete-mind-meter/internal/cache"
	"github.com/sportsmind/athlete-mind-meter/internal/catalog"
	"github.com/sportsmind/athlete-mind-meter/internal/database"
	"github.com/sportsmind/athlete-mind-meter/internal/engine"
	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
	"github.com/sportsmind/athlete-mind-meter/internal/monitoring"
	"github.com/sportsmind/athlete-mind-meter/internal/ratelimit"
	"github.com/sportsmind/athlete-mind-meter/internal/security"
)

const serverVersion = "1.0.0"

type config struct {
	DataDir       string
	Port          string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func loadConfig() config {
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	cacheTTL := 15 * time.Minute
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cacheTTL = d
		}
	}

	return config{
		DataDir:       getEnvOrDefault("DATA_DIR", "./data"),
		Port:          getEnvOrDefault("PORT", "8080"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		CacheTTL:      cacheTTL,
	}
}

// server bundles the assessment pipeline and its supporting services.
type server struct {
	scorer     *engine.Scorer
	classifier *engine.Classifier
	comparer   *engine.ComparisonEngine
	historian  *engine.HistoryAnalyzer
	insights   *engine.InsightGenerator
	questions  *catalog.Catalog
	profiles   []engine.ArchetypeProfile

	db           *database.DB
	repo         *database.Repository
	participants *database.ParticipantService

	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	appCache *cache.Cache
	limiter  *ratelimit.RateLimiter
}

// Close releases the server's long-lived resources
func (s *server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
	if s.db != nil {
		apperrors.SafeClose(s.db, "database")
	}
}

// setupRouter builds the full application: engine, storage, middleware
// chain and routes. Returned server must be closed by the caller.
func setupRouter(cfg config) (*gin.Engine, *server, error) {
	scale := engine.DefaultScale()

	store := catalog.NewStore(cfg.DataDir)
	questions, err := store.LoadQuestions()
	if err != nil {
		return nil, nil, err
	}
	questionCatalog, err := catalog.NewCatalog(questions, scale)
	if err != nil {
		return nil, nil, err
	}

	profiles, err := store.LoadProfiles()
	if err != nil {
		return nil, nil, err
	}
	classifier, err := engine.NewClassifier(profiles)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	repo := database.NewRepository(db)
	participantService := database.NewParticipantService(repo, cfg.JWTSecret)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		// Degraded but functional: the limiter falls back to in-memory
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)

	srv := &server{
		scorer:       engine.NewScorerWithScale(scale),
		classifier:   classifier,
		comparer:     engine.NewComparisonEngineWithClassifier(classifier),
		historian:    engine.NewHistoryAnalyzer(),
		insights:     engine.NewInsightGenerator(),
		questions:    questionCatalog,
		profiles:     profiles,
		db:           db,
		repo:         repo,
		participants: participantService,
		metrics:      appMetrics,
		logger:       appLogger,
		appCache:     cache.NewCache(cfg.CacheTTL),
		limiter:      limiter,
	}

	securityConfig := security.DefaultSecurityConfig()
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)
	securityMiddleware.SetParticipantService(participantService)

	r := gin.New()
	if err := r.SetTrustedProxies(securityConfig.TrustedProxies); err != nil {
		srv.Close()
		return nil, nil, err
	}

	// Monitoring first so every request is captured
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(monitoring.SecurityMonitoringMiddleware(appLogger))

	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	r.Use(security.SecurityHeadersMiddleware())
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)

	if securityConfig.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = securityConfig.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		r.Use(cors.New(corsConfig))
	}

	r.Use(securityMiddleware.SessionAuth)
	r.Use(limiter.IPRateLimitMiddleware())
	r.Use(limiter.ParticipantRateLimitMiddleware())
	r.Use(srv.appCache.Middleware(appMetrics))

	srv.registerRoutes(r, securityMiddleware)

	return r, srv, nil
}

func (s *server) registerRoutes(r *gin.Engine, sm *security.SecurityMiddleware) {
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.appCache.Stats())
	})
	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": s.db.GetPoolStats(),
		})
	})
	r.GET("/ratelimit/status", s.limiter.HandleRateLimitStatus())

	// Admin endpoints; protect with authentication in production
	admin := r.Group("/admin")
	admin.GET("/ratelimit", s.limiter.HandleAdminRateLimits())
	admin.POST("/ratelimit/participants/:participantID/reset", s.limiter.HandleAdminResetParticipant())
	admin.POST("/ratelimit/ips/:ip/reset", s.limiter.HandleAdminResetIP())

	api := r.Group("/api/v1")
	api.GET("/questions", s.handleQuestions)
	api.GET("/archetypes", s.handleArchetypes)
	api.POST("/assessments", s.handleSubmitAssessment(sm))
	api.GET("/participants/:id/history", s.handleHistory)
	api.GET("/participants/:id/stats", s.handleParticipantStats)
	api.POST("/comparisons", s.handleCompare)
	api.GET("/comparisons/:id", s.handleGetComparison)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Performance profiling endpoints (development only)
	if os.Getenv("ENABLE_PROFILING") == "true" {
		slog.Info("Enabling performance profiling endpoints")
		r.GET("/debug/pprof/*filepath", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   serverVersion,
		"questions": s.questions.Len(),
		"metrics":   s.metrics.GetStats(),
	})
}

func (s *server) handleQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions": s.questions.Questions(),
		"count":     s.questions.Len(),
	})
}

func (s *server) handleArchetypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"archetypes": s.profiles,
	})
}

type assessmentRequest struct {
	Name    string              `json:"name" binding:"required"`
	Answers []catalog.RawAnswer `json:"answers" binding:"required"`
}

func (s *server) handleSubmitAssessment(sm *security.SecurityMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req assessmentRequest
		if err := c.BindJSON(&req); err != nil {
			abortWithError(c, apperrors.NewValidationError("invalid JSON body", err.Error()))
			return
		}

		req.Name = sm.SanitizeInput(req.Name)
		if err := sm.ValidateName(req.Name); err != nil {
			abortWithError(c, apperrors.NewValidationError(err.Error()))
			return
		}

		answers, err := s.questions.Resolve(req.Answers)
		if err != nil {
			abortWithError(c, apperrors.ToAppError(err))
			return
		}

		report, err := s.scorer.Score(answers)
		if err != nil {
			abortWithError(c, apperrors.ToAppError(err))
			return
		}
		if len(report.MissingDimensions) > 0 {
			missing := make([]string, len(report.MissingDimensions))
			for i, d := range report.MissingDimensions {
				missing[i] = string(d)
			}
			abortWithError(c, apperrors.NewIncompleteDataWarning(missing))
			return
		}

		classification, err := s.classifier.Classify(&report.Vector)
		if err != nil {
			abortWithError(c, apperrors.ToAppError(err))
			return
		}

		insight := s.insights.Generate(&report.Vector)

		// The weekly quota is charged only once the submission has passed
		// validation and scoring.
		submission, err := s.participants.ProcessSubmission(
			req.Name, c.ClientIP(), c.GetHeader("User-Agent"),
			c.Request.URL.Path, c.Request.Method)
		if err != nil {
			abortWithError(c, apperrors.ToAppError(err))
			return
		}
		if !submission.CanSubmit {
			abortWithError(c, apperrors.NewRateLimitError(
				submission.Usage.WeekEnd.Format(time.RFC3339)))
			return
		}

		record := &database.AssessmentRecord{
			ParticipantID:      submission.Participant.ID,
			Vector:             report.Vector,
			SelfEsteemTotal:    report.SelfEsteemTotal,
			AthleteMindTotal:   report.AthleteMindTotal,
			SportsmanshipTotal: report.SportsmanshipTotal,
			GrandTotal:         report.GrandTotal,
			Archetype:          classification.Archetype,
			SelfEsteemAnalysis: insight.SelfEsteemAnalysis,
			SportsmanshipText:  insight.SportsmanshipBalance,
			Strengths:          mustJSON(insight.Strengths),
			Weaknesses:         mustJSON(insight.Weaknesses),
		}
		if err := s.repo.SaveResult(record); err != nil {
			abortWithError(c, apperrors.NewInternalError("failed to persist assessment", err))
			return
		}

		token, err := s.participants.GenerateSessionToken(submission.Participant.ID)
		if err != nil {
			abortWithError(c, apperrors.NewInternalError("failed to issue session token", err))
			return
		}

		remaining, err := s.participants.GetRemainingSubmissions(submission.Participant.ID)
		if err != nil {
			remaining = 0
		}

		s.metrics.IncrementSubmissions()
		s.logger.ScoringLogger(submission.Participant.ID, report.AnswerCount,
			report.GrandTotal, string(classification.Archetype), time.Since(start))

		c.JSON(http.StatusOK, gin.H{
			"participant_id":        submission.Participant.ID,
			"result_id":             record.ID,
			"taken_at":              record.TakenAt,
			"report":                report,
			"classification":        classification,
			"insight":               insight,
			"session_token":         token,
			"remaining_submissions": remaining,
		})
	}
}

func (s *server) handleHistory(c *gin.Context) {
	start := time.Now()
	participantID := c.Param("id")

	if _, err := s.repo.GetParticipant(participantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			abortWithError(c, apperrors.NewNotFoundError("participant", participantID))
			return
		}
		abortWithError(c, apperrors.NewInternalError("failed to load participant", err))
		return
	}

	filter, order, page, perPage, appErr := parseHistoryQuery(c)
	if appErr != nil {
		abortWithError(c, appErr)
		return
	}

	records, err := s.repo.ResultsForParticipant(participantID)
	if err != nil {
		abortWithError(c, apperrors.NewInternalError("failed to load history", err))
		return
	}

	entries := make([]engine.HistoryEntry, len(records))
	for i := range records {
		entries[i] = records[i].HistoryEntry()
	}

	historyPage, err := s.historian.Analyze(entries, filter, order, page, perPage)
	if err != nil {
		abortWithError(c, apperrors.ToAppError(err))
		return
	}

	s.metrics.IncrementHistoryQueries()
	s.logger.HistoryLogger(participantID, historyPage.TotalCount,
		historyPage.Page, historyPage.PerPage, time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"participant_id": participantID,
		"history":        historyPage,
	})
}

// parseHistoryQuery reads filter, sort and pagination parameters from the
// query string
func parseHistoryQuery(c *gin.Context) (engine.HistoryFilter, engine.HistorySort, int, int, *apperrors.AppError) {
	var filter engine.HistoryFilter

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'from' timestamp, expected RFC3339")
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'to' timestamp, expected RFC3339")
		}
		filter.To = &t
	}
	if v := c.Query("min_total"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'min_total' value")
		}
		filter.MinTotal = &f
	}
	if v := c.Query("max_total"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'max_total' value")
		}
		filter.MaxTotal = &f
	}
	for _, a := range c.QueryArray("athlete_type") {
		filter.Archetypes = append(filter.Archetypes, engine.Archetype(a))
	}
	filter.OnlyImproved = c.Query("only_improved") == "true"

	order := engine.SortByDate
	if v := c.Query("sort"); v != "" {
		order = engine.HistorySort(v)
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'page' value")
		}
		page = n
	}

	perPage := engine.DefaultPerPage
	if v := c.Query("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, "", 0, 0, apperrors.NewValidationError("invalid 'per_page' value")
		}
		perPage = n
	}

	return filter, order, page, perPage, nil
}

func (s *server) handleParticipantStats(c *gin.Context) {
	participantID := c.Param("id")

	if _, err := s.repo.GetParticipant(participantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			abortWithError(c, apperrors.NewNotFoundError("participant", participantID))
			return
		}
		abortWithError(c, apperrors.NewInternalError("failed to load participant", err))
		return
	}

	stats, err := s.participants.GetParticipantStats(participantID)
	if err != nil {
		abortWithError(c, apperrors.ToAppError(err))
		return
	}

	c.JSON(http.StatusOK, stats)
}

type comparisonRequest struct {
	Participants []engine.Participant `json:"participants" binding:"required"`
}

func (s *server) handleCompare(c *gin.Context) {
	start := time.Now()

	var req comparisonRequest
	if err := c.BindJSON(&req); err != nil {
		abortWithError(c, apperrors.NewValidationError("invalid JSON body", err.Error()))
		return
	}

	for i, p := range req.Participants {
		if p.Name == "" {
			abortWithError(c, apperrors.NewValidationError(
				"participant "+strconv.Itoa(i+1)+" has no name"))
			return
		}
	}

	report, err := s.comparer.Compare(req.Participants)
	if err != nil {
		abortWithError(c, apperrors.ToAppError(err))
		return
	}

	names := make([]string, len(req.Participants))
	for i, p := range req.Participants {
		names[i] = p.Name
	}

	record, err := s.repo.SaveComparison(names, report)
	if err != nil {
		abortWithError(c, apperrors.NewInternalError("failed to persist comparison", err))
		return
	}

	s.metrics.IncrementComparisons()
	s.logger.ComparisonLogger(len(req.Participants), report.Similarity,
		time.Since(start), false)

	c.JSON(http.StatusOK, gin.H{
		"comparison_id": record.ID,
		"participants":  names,
		"report":        report,
		"created_at":    record.CreatedAt,
	})
}

func (s *server) handleGetComparison(c *gin.Context) {
	id := c.Param("id")

	record, names, report, err := s.repo.GetComparison(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			abortWithError(c, apperrors.NewNotFoundError("comparison", id))
			return
		}
		abortWithError(c, apperrors.NewInternalError("failed to load comparison", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison_id": record.ID,
		"participants":  names,
		"report":        report,
		"created_at":    record.CreatedAt,
	})
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	apperrors.LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, appErr)
	c.Abort()
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	router, app, err := setupRouter(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
