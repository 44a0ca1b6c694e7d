package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/common"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/recurrence"
	"github.com/routewise/dispatch/internal/service"
	"github.com/routewise/dispatch/internal/storage"
)

type promptRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyzeIntent(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	detected := s.dispatcher.Analyze(req.Text)
	if detected == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"intent": detected})
}

func (s *Server) handleExecuteIntent(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	detected := s.dispatcher.Analyze(req.Text)
	if detected == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is empty"})
		return
	}

	result, err := s.dispatcher.Execute(c.Request.Context(), detected)
	if err != nil {
		if errors.Is(err, common.ErrLowConfidence) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "intent": detected})
			return
		}
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent": detected, "result": result})
}

func (s *Server) handleRecurrenceSummary(c *gin.Context) {
	var rule model.RecurrenceRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recurrence rule"})
		return
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	c.JSON(http.StatusOK, gin.H{"summary": recurrence.Summarize(rule)})
}

func (s *Server) handleListShifts(c *gin.Context) {
	filter := service.ShiftFilter{
		Driver: c.Query("driver"),
		Route:  c.Query("route"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.StartDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		filter.EndDate = &t
	}

	shifts, err := s.storage.GetShifts(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

type createShiftRequest struct {
	model.Shift
	Recurrence *model.RecurrenceRule `json:"recurrence,omitempty"`
}

func (s *Server) handleCreateShift(c *gin.Context) {
	var req createShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	// A recurrence rule turns one request into a whole series.
	if req.Recurrence != nil {
		shifts, err := s.dispatcher.ScheduleRecurring(c.Request.Context(), &req.Shift, *req.Recurrence)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"shifts":  shifts,
			"summary": recurrence.Summarize(*req.Recurrence),
		})
		return
	}

	if err := s.storage.CreateShift(c.Request.Context(), &req.Shift); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shifts": []*model.Shift{&req.Shift}})
}

func (s *Server) handleUpdateShift(c *gin.Context) {
	var shift model.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift"})
		return
	}
	shift.ID = c.Param("id")

	if err := s.storage.UpdateShift(c.Request.Context(), &shift); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

func (s *Server) handleDeleteShift(c *gin.Context) {
	if err := s.storage.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListDrivers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	drivers, err := s.storage.GetDrivers(c.Request.Context(), activeOnly)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func (s *Server) handleCreatePayout(c *gin.Context) {
	var payout model.PayoutRequest
	if err := c.ShouldBindJSON(&payout); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout request"})
		return
	}
	if payout.ID == "" {
		payout.ID = uuid.NewString()
	}

	if err := s.storage.CreatePayoutRequest(c.Request.Context(), &payout); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payout": payout})
}

func (s *Server) handleListPayouts(c *gin.Context) {
	payouts, err := s.storage.GetPayoutRequests(c.Request.Context(), model.PayoutStatus(c.Query("status")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

type approvePayoutRequest struct {
	ApprovedBy string `json:"approved_by"`
}

func (s *Server) handleApprovePayout(c *gin.Context) {
	var req approvePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approval request"})
		return
	}
	if req.ApprovedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved_by is required"})
		return
	}

	payout, err := s.storage.ApprovePayoutRequest(c.Request.Context(), c.Param("id"), req.ApprovedBy)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payout": payout})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	notifications, err := s.storage.GetNotifications(c.Request.Context(), c.Param("recipient"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (s *Server) handleCreateNotification(c *gin.Context) {
	var notification model.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification"})
		return
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}

	if err := s.storage.CreateNotification(c.Request.Context(), &notification); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// fail maps storage and dispatch errors to HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNoIntent), errors.Is(err, common.ErrUnsupportedAction),
		errors.Is(err, storage.ErrInvalidShift), errors.Is(err, storage.ErrInvalidTicket),
		errors.Is(err, storage.ErrInvalidPayout), errors.Is(err, storage.ErrEmptyString):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
