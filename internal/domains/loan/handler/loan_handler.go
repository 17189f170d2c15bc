package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReminderEnqueuer is optional; without it the reminders endpoint answers 503.
type ReminderEnqueuer interface {
	EnqueueDueSoonReminder(ctx context.Context, at time.Time) (string, error)
}

type Handler struct {
	service   service.ServiceInterface
	now       shared.Clock
	reminders ReminderEnqueuer
}

func NewHandler(service service.ServiceInterface, clock shared.Clock, reminders ReminderEnqueuer) *Handler {
	return &Handler{service: service, now: clock, reminders: reminders}
}

// ListLoans - GET /v1/loans?status=borrowed|overdue|returned|lost
func (h *Handler) ListLoans(c *gin.Context) {
	status, err := model.ParseStatus(c.Query("status"))
	if model.HandleLoanError(c, err) {
		return
	}

	loans, err := h.service.FilterByStatus(c.Request.Context(), status, h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Get loans successfully", loans, &response.Meta{Total: len(loans)})
}

// GetLoan - GET /v1/loans/:id
func (h *Handler) GetLoan(c *gin.Context) {
	loan, err := h.service.Get(c.Request.Context(), c.Param("id"), h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Get loan successfully", loan)
}

// DueSoon - GET /v1/loans/due-soon
func (h *Handler) DueSoon(c *gin.Context) {
	loans, err := h.service.DueSoon(c.Request.Context(), h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Get loans due soon successfully", loans, &response.Meta{Total: len(loans)})
}

// Statistics - GET /v1/loans/stats
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.AggregateStatistics(c.Request.Context(), h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Get loan statistics successfully", stats)
}

// Borrow - POST /v1/loans
func (h *Handler) Borrow(c *gin.Context) {
	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loan, err := h.service.Borrow(c.Request.Context(), req, h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, "Loan created successfully", loan)
}

// MarkReturned - POST /v1/loans/:id/return
func (h *Handler) MarkReturned(c *gin.Context) {
	loan, err := h.service.MarkReturned(c.Request.Context(), c.Param("id"), h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("%q has been marked as returned", loan.Book.Title), loan)
}

// MarkLost - POST /v1/loans/:id/lost
func (h *Handler) MarkLost(c *gin.Context) {
	loan, err := h.service.MarkLost(c.Request.Context(), c.Param("id"), h.now())
	if model.HandleLoanError(c, err) {
		return
	}

	msg := fmt.Sprintf("%q has been marked as lost. Replacement cost: %s", loan.Book.Title, loan.CurrentFineFormatted)
	response.Success(c, http.StatusOK, msg, loan)
}

// ExportLoans - GET /v1/loans/export
func (h *Handler) ExportLoans(c *gin.Context) {
	now := h.now()
	f, err := h.service.ExportExcel(c.Request.Context(), now)
	if model.HandleLoanError(c, err) {
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("[Loan] close export file failed", err)
		}
	}()

	filename := fmt.Sprintf("loans_%s.xlsx", now.Format("20060102"))
	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("[Loan] write export file failed", err)
	}
}

// TriggerReminders - POST /v1/loans/reminders
func (h *Handler) TriggerReminders(c *gin.Context) {
	if h.reminders == nil {
		response.Error(c, http.StatusServiceUnavailable, "Reminder queue unavailable", "redis is not configured")
		return
	}

	taskID, err := h.reminders.EnqueueDueSoonReminder(c.Request.Context(), h.now())
	if err != nil {
		logger.Error("[Loan] enqueue reminder failed", err)
		response.Error(c, http.StatusServiceUnavailable, "Reminder queue unavailable", "failed to enqueue reminder")
		return
	}

	response.Success(c, http.StatusAccepted, "Reminder job enqueued", gin.H{"taskId": taskID})
}
