package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	leaveerrors "github.com/VonnAirone/leave-management-system/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	submitFn  func(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error)
	approveFn func(ctx context.Context, actorID, applicationID string, req ApproveLeaveRequest) (LeaveApplicationResponse, error)
	rejectFn  func(ctx context.Context, actorID, applicationID string, req RejectLeaveRequest) (LeaveApplicationResponse, error)
	getAllFn  func(ctx context.Context, status, department string, page, pageSize int) ([]LeaveApplicationResponse, int64, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}

func (f *fakeLeaveService) Approve(ctx context.Context, actorID, applicationID string, req ApproveLeaveRequest) (LeaveApplicationResponse, error) {
	return f.approveFn(ctx, actorID, applicationID, req)
}

func (f *fakeLeaveService) Reject(ctx context.Context, actorID, applicationID string, req RejectLeaveRequest) (LeaveApplicationResponse, error) {
	return f.rejectFn(ctx, actorID, applicationID, req)
}

func (f *fakeLeaveService) GetByID(ctx context.Context, applicationID, requesterID string, canReadAll bool) (LeaveApplicationResponse, error) {
	return LeaveApplicationResponse{}, nil
}

func (f *fakeLeaveService) GetMine(ctx context.Context, employeeID string) ([]LeaveApplicationResponse, error) {
	return nil, nil
}

func (f *fakeLeaveService) GetAll(ctx context.Context, status, department string, page, pageSize int) ([]LeaveApplicationResponse, int64, error) {
	return f.getAllFn(ctx, status, department, page, pageSize)
}

func newLeaveRouter(svc Service, employeeID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Set("role", role)
	})
	engine.POST("/leaves", h.Submit)
	engine.POST("/leaves/:id/approve", h.Approve)
	engine.POST("/leaves/:id/reject", h.Reject)
	engine.GET("/leaves", h.GetAll)
	return engine
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSubmitHandlerReturnsCreated(t *testing.T) {
	employeeID := uuid.New().String()
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, gotEmployeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error) {
			assert.Equal(t, employeeID, gotEmployeeID)
			return LeaveApplicationResponse{
				ApplicationNumber: "APP-000007",
				Status:            StatusSubmitted,
				NumWorkingDays:    5,
			}, nil
		},
	}
	engine := newLeaveRouter(svc, employeeID, "employee")

	location := LocationWithinPH
	rec, env := doJSON(t, engine, http.MethodPost, "/leaves", SubmitLeaveRequest{
		LeaveTypeID:          1,
		InclusiveDateStart:   "2025-06-02",
		InclusiveDateEnd:     "2025-06-06",
		VacationLocationType: &location,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Ok)

	var resp LeaveApplicationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "APP-000007", resp.ApplicationNumber)
}

func TestSubmitHandlerRejectsMalformedDates(t *testing.T) {
	engine := newLeaveRouter(&fakeLeaveService{}, uuid.New().String(), "employee")

	rec, env := doJSON(t, engine, http.MethodPost, "/leaves", map[string]any{
		"leave_type_id":        1,
		"inclusive_date_start": "June 2, 2025",
		"inclusive_date_end":   "2025-06-06",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
}

func TestApproveHandlerMapsStatusConflict(t *testing.T) {
	svc := &fakeLeaveService{
		approveFn: func(ctx context.Context, actorID, applicationID string, req ApproveLeaveRequest) (LeaveApplicationResponse, error) {
			return LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
		},
	}
	engine := newLeaveRouter(svc, uuid.New().String(), "hr_admin")

	rec, env := doJSON(t, engine, http.MethodPost, "/leaves/"+uuid.New().String()+"/approve", ApproveLeaveRequest{})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Ok)
}

func TestRejectHandlerRequiresReason(t *testing.T) {
	engine := newLeaveRouter(&fakeLeaveService{}, uuid.New().String(), "hr_admin")

	rec, env := doJSON(t, engine, http.MethodPost, "/leaves/"+uuid.New().String()+"/reject", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Ok)
}

func TestGetAllHandlerPaginates(t *testing.T) {
	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context, status, department string, page, pageSize int) ([]LeaveApplicationResponse, int64, error) {
			assert.Equal(t, "submitted", status)
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, pageSize)
			return []LeaveApplicationResponse{{ApplicationNumber: "APP-000011"}}, 21, nil
		},
	}
	engine := newLeaveRouter(svc, uuid.New().String(), "hr_admin")

	req := httptest.NewRequest(http.MethodGet, "/leaves?status=submitted&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, int64(21), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)
	assert.Equal(t, 2, env.Meta.Page)
}
