package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	summarizeHandler *Summarize
	summariesHandler *Summaries
	authMiddleware   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, summarizeHandler *Summarize, summariesHandler *Summaries, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:              cfg,
		summarizeHandler: summarizeHandler,
		summariesHandler: summariesHandler,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Render structured errors raised outside handlers, e.g. by the
	// auth middleware
	e.HTTPErrorHandler = rt.errorHandler

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Authenticated API group
	api := e.Group("/api", rt.authMiddleware)

	rt.setupSummarizeRoutes(api)
	rt.setupSummaryRoutes(api)
}

// setupSummarizeRoutes configures summarization routes
func (rt *Router) setupSummarizeRoutes(g *echo.Group) {
	g.POST("/summarize", rt.summarizeHandler.Create)
	// Kept for clients that refine through the summarize endpoint
	g.POST("/summarize/:id/refine", rt.summarizeHandler.Refine)
}

// setupSummaryRoutes configures history and download routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	summaries := g.Group("/summaries")

	summaries.GET("", rt.summariesHandler.List)
	summaries.GET("/:id", rt.summariesHandler.Get)
	summaries.GET("/:id/download", rt.summariesHandler.Download)
	summaries.POST("/:id/refine", rt.summarizeHandler.Refine)
	summaries.DELETE("/:id", rt.summariesHandler.Delete)
}

// errorHandler maps application errors to their status codes and the
// standard error body. Anything else falls through to Echo's default.
func (rt *Router) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}
		_ = c.JSON(appErr.HTTPCode, errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		})
		return
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, errs{
			Code:    httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
		return
	}

	_ = c.JSON(http.StatusInternalServerError, errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
