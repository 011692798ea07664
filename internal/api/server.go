package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gonewsag/internal/aggregator"
	"gonewsag/internal/config"
	"gonewsag/internal/engagement"
	"gonewsag/internal/models"
	"gonewsag/internal/poller"
	"gonewsag/internal/security"
	"gonewsag/internal/users"
	"gonewsag/internal/web"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router        *gin.Engine
	aggregator    *aggregator.Aggregator
	engagement    *engagement.Store
	users         *users.Registry
	poller        *poller.Poller
	port          int
	trending      string
	persist       func()
	swaggerServer *web.SwaggerServer
}

func NewServer(agg *aggregator.Aggregator, eng *engagement.Store, reg *users.Registry, poller *poller.Poller, cfg *config.Config, persist func()) *Server {
	router := gin.Default()

	// Setup security middleware
	securityConfig := &security.SecurityConfig{
		EnableRateLimit:       cfg.Security.EnableRateLimit,
		RateLimitPerSecond:    cfg.Security.RateLimitPerSecond,
		RateLimitBurst:        cfg.Security.RateLimitBurst,
		EnableCORS:            cfg.Security.EnableCORS,
		AllowedOrigins:        cfg.Security.AllowedOrigins,
		EnableSecurityHeaders: cfg.Security.EnableSecurityHeaders,
		MaxRequestSize:        cfg.Security.MaxRequestSize,
		EnableRequestID:       cfg.Security.EnableRequestID,
	}
	security.SetupSecurityMiddleware(router, securityConfig)

	swaggerServer := web.NewSwaggerServer(cfg.EnableSwagger)

	if persist == nil {
		persist = func() {}
	}

	server := &Server{
		router:        router,
		aggregator:    agg,
		engagement:    eng,
		users:         reg,
		poller:        poller,
		port:          cfg.Port,
		trending:      cfg.TrendingCategory,
		persist:       persist,
		swaggerServer: swaggerServer,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API routes
	api := s.router.Group("/api/v1")
	{
		api.GET("/categories", s.getCategories)
		api.GET("/articles", s.listArticles)
		api.GET("/articles/:id", s.getArticle)
		api.POST("/articles/:id/like", s.toggleArticleLike)
		api.GET("/articles/:id/comments", s.listComments)
		api.POST("/articles/:id/comments", s.addComment)
		api.POST("/articles/:id/comments/:commentID/like", s.toggleCommentLike)
		api.GET("/trending", s.getTrending)

		api.POST("/auth/register", s.registerUser)
		api.POST("/auth/login", s.loginUser)

		// Poller control endpoints
		api.GET("/poller/status", s.getPollerStatus)
		api.POST("/poller/force-poll/:category", s.forcePollCategory)
		api.GET("/poller/last-polled", s.getLastPolledTimes)
	}

	// Register web interfaces
	s.swaggerServer.RegisterRoutes(s.router)
}

func (s *Server) Start() error {
	return s.router.Run(":" + strconv.Itoa(s.port))
}

// StartWithContext runs the server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// Router exposes the underlying gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "news-aggregator",
		"poller_active": s.poller.IsPolling(),
	})
}

func (s *Server) getCategories(c *gin.Context) {
	categories := s.aggregator.AvailableCategories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

func (s *Server) listArticles(c *gin.Context) {
	category := c.DefaultQuery("category", config.AggregateCategory)
	query := c.Query("q")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			page = p
		}
	}

	pageSize := 0
	if sizeStr := c.Query("pageSize"); sizeStr != "" {
		if ps, err := strconv.Atoi(sizeStr); err == nil {
			pageSize = ps
		}
	}

	result, err := s.aggregator.ListArticles(category, query, page, pageSize)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) getArticle(c *gin.Context) {
	article, err := s.aggregator.GetArticle(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

type likeRequest struct {
	Username string `json:"username"`
}

func (s *Server) toggleArticleLike(c *gin.Context) {
	id := c.Param("id")

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &models.ValidationError{Reason: "invalid request body"})
		return
	}

	username, err := s.requireUser(req.Username)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.aggregator.GetArticle(id); err != nil {
		s.writeError(c, err)
		return
	}

	result := s.engagement.ToggleArticleLike(id, username)
	s.persist()

	c.JSON(http.StatusOK, result)
}

func (s *Server) listComments(c *gin.Context) {
	id := c.Param("id")

	if _, err := s.aggregator.GetArticle(id); err != nil {
		s.writeError(c, err)
		return
	}

	comments := s.engagement.ListComments(id, c.Query("viewer"))
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

type commentRequest struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

func (s *Server) addComment(c *gin.Context) {
	id := c.Param("id")

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &models.ValidationError{Reason: "invalid request body"})
		return
	}

	username, err := s.requireUser(req.Username)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if _, err := s.aggregator.GetArticle(id); err != nil {
		s.writeError(c, err)
		return
	}

	comment, err := s.engagement.AddComment(id, username, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.persist()

	c.JSON(http.StatusCreated, comment)
}

func (s *Server) toggleCommentLike(c *gin.Context) {
	id := c.Param("id")
	commentID := c.Param("commentID")

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &models.ValidationError{Reason: "invalid request body"})
		return
	}

	username, err := s.requireUser(req.Username)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result, err := s.engagement.ToggleCommentLike(id, commentID, username)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.persist()

	c.JSON(http.StatusOK, result)
}

func (s *Server) getTrending(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = s.trending
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	result, err := s.aggregator.Trending(category, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) registerUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &models.ValidationError{Reason: "invalid request body"})
		return
	}

	if err := s.users.Register(req.Username, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	s.persist()

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"username": req.Username,
	})
}

func (s *Server) loginUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, &models.ValidationError{Reason: "invalid request body"})
		return
	}

	if err := s.users.Authenticate(req.Username, req.Password); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"username": req.Username,
	})
}

func (s *Server) getPollerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"is_polling": s.poller.IsPolling(),
		"status":     "active",
	})
}

func (s *Server) forcePollCategory(c *gin.Context) {
	category := c.Param("category")

	if err := s.poller.ForcePoll(category); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Force poll initiated successfully",
		"category": category,
	})
}

func (s *Server) getLastPolledTimes(c *gin.Context) {
	c.JSON(http.StatusOK, s.poller.GetLastPolledTimes())
}

// requireUser checks that a mutation names a registered account
func (s *Server) requireUser(username string) (string, error) {
	if username == "" {
		return "", &models.AuthError{Reason: "username is required"}
	}
	if !s.users.Exists(username) {
		return "", &models.AuthError{Reason: "unknown user"}
	}
	return username, nil
}

// writeError maps domain errors onto HTTP status codes
func (s *Server) writeError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var validation *models.ValidationError
	var auth *models.AuthError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &auth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
