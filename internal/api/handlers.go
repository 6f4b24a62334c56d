package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/intelligence"
)

func (s *Server) getPlan(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.deps.Workspace
	if !ws.Active() {
		fail(c, estimate.ErrNoActivePlan)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plan":     ws.Current(),
		"baseline": ws.Baseline(),
		"canUndo":  ws.CanUndo(),
		"canRedo":  ws.CanRedo(),
	})
}

// generatePlan runs the generator outside the lock; only installing the
// result touches the workspace.
func (s *Server) generatePlan(c *gin.Context) {
	if s.deps.Generator == nil {
		fail(c, intelligence.ErrServiceUnavailable)
		return
	}
	var intake domain.Intake
	if err := c.ShouldBindJSON(&intake); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := s.deps.Generator.Generate(c.Request.Context(), intake)
	if err != nil {
		fail(c, err)
		return
	}
	s.install(c, plan, http.StatusCreated)
}

func (s *Server) loadPlan(c *gin.Context) {
	var plan domain.ProjectPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		badRequest(c, err)
		return
	}
	s.install(c, &plan, http.StatusOK)
}

func (s *Server) install(c *gin.Context, plan *domain.ProjectPlan, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issues, err := s.deps.Workspace.CreateHistory(plan)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, gin.H{"plan": s.deps.Workspace.Current(), "issues": issues})
}

func (s *Server) resetPlan(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deps.Workspace.Reset()
	c.Status(http.StatusNoContent)
}

func (s *Server) floorEdit(c *gin.Context) {
	var req contract.FloorEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	preview := c.Query("preview") == "true"
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		res *contract.EditResult
		err error
	)
	if preview {
		res, err = s.deps.Workspace.PreviewFloorEdit(req)
	} else {
		res, err = s.deps.Workspace.ApplyFloorEdit(req)
	}
	if err != nil {
		fail(c, err)
		return
	}
	editResponse(c, res)
}

func (s *Server) totalEdit(c *gin.Context) {
	var req contract.TotalQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.deps.Workspace.ApplyTotalQuantityEdit(req)
	if err != nil {
		fail(c, err)
		return
	}
	editResponse(c, res)
}

func (s *Server) bulkEdit(c *gin.Context) {
	var req contract.BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.deps.Workspace.ApplyBulkEdit(req)
	if err != nil {
		fail(c, err)
		return
	}
	editResponse(c, res)
}

func (s *Server) undo(c *gin.Context) {
	s.move(c, (*estimate.Workspace).Undo)
}

func (s *Server) redo(c *gin.Context) {
	s.move(c, (*estimate.Workspace).Redo)
}

func (s *Server) move(c *gin.Context, step func(*estimate.Workspace) (*domain.ProjectPlan, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.deps.Workspace
	if !ws.Active() {
		fail(c, estimate.ErrNoActivePlan)
		return
	}
	plan, moved := step(ws)
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"plan":    plan,
		"canUndo": ws.CanUndo(),
		"canRedo": ws.CanRedo(),
	})
}

func (s *Server) history(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deps.Workspace.Active() {
		fail(c, estimate.ErrNoActivePlan)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": s.deps.Workspace.History()})
}

func (s *Server) materials(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deps.Workspace.Active() {
		fail(c, estimate.ErrNoActivePlan)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": s.deps.Workspace.Materials()})
}

// suggestions reads the current snapshot under the lock and asks the
// advisor outside it. Snapshots are immutable, so the read is safe.
func (s *Server) suggestions(c *gin.Context) {
	if s.deps.Advisor == nil {
		fail(c, intelligence.ErrServiceUnavailable)
		return
	}
	s.mu.Lock()
	plan := s.deps.Workspace.Current()
	s.mu.Unlock()
	if plan == nil {
		fail(c, estimate.ErrNoActivePlan)
		return
	}

	kind := c.DefaultQuery("kind", "all")
	if kind == "all" {
		all, err := s.deps.Advisor.All(c.Request.Context(), plan)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": all})
		return
	}
	sug, err := s.deps.Advisor.Suggest(c.Request.Context(), intelligence.SuggestionKind(kind), plan)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": []intelligence.Suggestion{*sug}})
}

type chatRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.deps.Workspace.SendMessage(req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	editResponse(c, res)
}

type ticketRequest struct {
	Description string                `json:"description" validate:"required"`
	Subject     string                `json:"subject,omitempty"`
	Category    domain.TicketCategory `json:"category,omitempty"`
}

// raiseTicket classifies the description when subject or category is
// missing, then records the ticket.
func (s *Server) raiseTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Subject == "" || req.Category == "" {
		var analysis *intelligence.TicketAnalysis
		if s.deps.Classifier != nil {
			var err error
			if analysis, err = s.deps.Classifier.Classify(c.Request.Context(), req.Description); err != nil {
				badRequest(c, err)
				return
			}
		} else {
			analysis = intelligence.ClassifyTicketByKeywords(req.Description)
		}
		if req.Subject == "" {
			req.Subject = analysis.Subject
		}
		if req.Category == "" {
			req.Category = analysis.Category
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.deps.Workspace.RaiseTicket(req.Subject, req.Category, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	editResponse(c, res)
}
