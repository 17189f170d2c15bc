package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	settingsModel "library-backend/internal/domains/settings/model"
	settingsService "library-backend/internal/domains/settings/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

type fakeEnqueuer struct {
	at  time.Time
	err error
}

func (f *fakeEnqueuer) EnqueueDueSoonReminder(_ context.Context, at time.Time) (string, error) {
	f.at = at
	if f.err != nil {
		return "", f.err
	}
	return "task-1", nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func setupRouter(t *testing.T, reminders ReminderEnqueuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	books := catalogRepo.SeedBooks()
	settings, err := settingsService.NewService(settingsModel.DefaultSettings(), nil)
	require.NoError(t, err)
	svc := loanService.NewService(
		loanRepo.NewMemoryRepository(loanRepo.SeedLoans(fixedNow, books)),
		catalogService.NewService(catalogRepo.NewMemoryRepository(books), nil),
		settings,
	)
	h := NewHandler(svc, func() time.Time { return fixedNow }, reminders)

	r := gin.New()
	loans := r.Group("/loans")
	loans.GET("", h.ListLoans)
	loans.GET("/due-soon", h.DueSoon)
	loans.GET("/stats", h.Statistics)
	loans.GET("/export", h.ExportLoans)
	loans.POST("/reminders", h.TriggerReminders)
	loans.GET("/:id", h.GetLoan)
	loans.POST("", h.Borrow)
	loans.POST("/:id/return", h.MarkReturned)
	loans.POST("/:id/lost", h.MarkLost)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestListLoans_FilterOverdue(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/loans?status=OVERDUE", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	// BB003 (lưu là overdue) và BB007 (borrowed nhưng đã quá hạn)
	assert.Equal(t, 2, env.Meta.Total)
}

func TestListLoans_InvalidStatus(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/loans?status=archived", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestDueSoon(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/loans/due-soon", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode(t, w).Meta.Total)
}

func TestStatistics(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/loans/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		ActiveCount  int `json:"activeCount"`
		OverdueCount int `json:"overdueCount"`
		LostCount    int `json:"lostCount"`
		DueSoonCount int `json:"dueSoonCount"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, 3, stats.ActiveCount)
	assert.Equal(t, 2, stats.OverdueCount)
	assert.Equal(t, 1, stats.LostCount)
	assert.Equal(t, 2, stats.DueSoonCount)
}

func TestMarkReturned_Flow(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/loans/BB001/return", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w).Message, "marked as returned")

	w = do(r, http.MethodPost, "/loans/BB001/return", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/loans/missing/return", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkLost_MessageIncludesReplacementCost(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/loans/BB003/lost", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w).Message, "Replacement cost: ₹45.00")
}

func TestBorrow(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/loans", `{"bookId":"1","borrowerName":"Aarav Sharma","borrowerId":"CS2021001"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/loans", `{"bookId":"2","borrowerName":"Aarav Sharma","borrowerId":"CS2021001"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/loans", `{"bookId":"1","borrowerName":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/loans", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportLoans(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/loans/export", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excelContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "loans_20240310.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestTriggerReminders(t *testing.T) {
	t.Run("no queue", func(t *testing.T) {
		w := do(setupRouter(t, nil), http.MethodPost, "/loans/reminders", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("enqueued", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		w := do(setupRouter(t, enq), http.MethodPost, "/loans/reminders", "")

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), "task-1")
		assert.True(t, enq.at.Equal(fixedNow))
	})

	t.Run("enqueue fails", func(t *testing.T) {
		enq := &fakeEnqueuer{err: errors.New("redis down")}
		w := do(setupRouter(t, enq), http.MethodPost, "/loans/reminders", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
