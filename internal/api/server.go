// Package api serves one estimate workspace over HTTP/JSON.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/intelligence"
)

// Deps are the collaborators a Server needs. Only Workspace is required.
type Deps struct {
	Workspace  *estimate.Workspace
	Generator  intelligence.PlanGenerator
	Advisor    intelligence.Advisor
	Classifier intelligence.TicketClassifier
	Logger     *slog.Logger
}

// Server serialises every request that touches the workspace, so edits
// never interleave.
type Server struct {
	mu   sync.Mutex
	deps Deps
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{deps: deps}
}

var bindingOnce sync.Once

// useValidateTags makes gin's binder read the `validate` tags the domain
// and contract types carry.
func useValidateTags() {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.SetTagName("validate")
		}
	})
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	useValidateTags()
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/plan", s.getPlan)
	api.POST("/plan", s.generatePlan)
	api.PUT("/plan", s.loadPlan)
	api.DELETE("/plan", s.resetPlan)

	api.POST("/edits/floor", s.floorEdit)
	api.POST("/edits/total", s.totalEdit)
	api.POST("/edits/bulk", s.bulkEdit)

	api.POST("/history/undo", s.undo)
	api.POST("/history/redo", s.redo)
	api.GET("/history", s.history)

	api.GET("/materials", s.materials)
	api.GET("/suggestions", s.suggestions)
	api.POST("/chat", s.chat)
	api.POST("/tickets", s.raiseTicket)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.Last().Error())
		}
		switch {
		case c.Writer.Status() >= 500:
			s.deps.Logger.Error("http request", attrs...)
		case c.Writer.Status() >= 400:
			s.deps.Logger.Warn("http request", attrs...)
		default:
			s.deps.Logger.Info("http request", attrs...)
		}
	}
}

// fail maps an error onto a status code and writes it.
func fail(c *gin.Context, err error) {
	var editErr *contract.EditError
	var valErrs validator.ValidationErrors
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &editErr), errors.As(err, &valErrs):
		status = http.StatusBadRequest
	case errors.Is(err, estimate.ErrNoActivePlan):
		status = http.StatusConflict
	case errors.Is(err, estimate.ErrUnknownEntry), errors.Is(err, estimate.ErrUnknownMaterial),
		errors.Is(err, estimate.ErrUnknownMilestone), errors.Is(err, estimate.ErrUnknownUpdate):
		status = http.StatusNotFound
	case errors.Is(err, estimate.ErrDuplicateEntry), errors.Is(err, estimate.ErrNilPlan):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, intelligence.ErrMalformedPlan):
		status = http.StatusBadGateway
	case errors.Is(err, intelligence.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func editResponse(c *gin.Context, res *contract.EditResult) {
	c.JSON(http.StatusOK, gin.H{"result": res, "plan": res.Plan})
}
