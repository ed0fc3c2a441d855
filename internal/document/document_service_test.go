package document

import (
	"context"
	"strings"
	"testing"

	"github.com/VonnAirone/leave-management-system/internal/leave"
	leaveerrors "github.com/VonnAirone/leave-management-system/internal/leave/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	getByIDFn func(ctx context.Context, applicationID, requesterID string, canReadAll bool) (leave.LeaveApplicationResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveApplicationResponse, error) {
	return leave.LeaveApplicationResponse{}, nil
}

func (f *fakeLeaveService) Approve(ctx context.Context, actorID, applicationID string, req leave.ApproveLeaveRequest) (leave.LeaveApplicationResponse, error) {
	return leave.LeaveApplicationResponse{}, nil
}

func (f *fakeLeaveService) Reject(ctx context.Context, actorID, applicationID string, req leave.RejectLeaveRequest) (leave.LeaveApplicationResponse, error) {
	return leave.LeaveApplicationResponse{}, nil
}

func (f *fakeLeaveService) GetByID(ctx context.Context, applicationID, requesterID string, canReadAll bool) (leave.LeaveApplicationResponse, error) {
	return f.getByIDFn(ctx, applicationID, requesterID, canReadAll)
}

func (f *fakeLeaveService) GetMine(ctx context.Context, employeeID string) ([]leave.LeaveApplicationResponse, error) {
	return nil, nil
}

func (f *fakeLeaveService) GetAll(ctx context.Context, status, department string, page, pageSize int) ([]leave.LeaveApplicationResponse, int64, error) {
	return nil, 0, nil
}

func approvedVacationResponse() leave.LeaveApplicationResponse {
	location := leave.LocationWithinPH
	detail := "Baguio City"
	withPay := 5.0
	withoutPay := 0.0
	earned := 15.0
	balance := 10.0

	return leave.LeaveApplicationResponse{
		ID:                "3b9b1f0e-0000-0000-0000-000000000001",
		ApplicationNumber: "APP-000042",
		EmployeeID:        "3b9b1f0e-0000-0000-0000-000000000002",

		OfficeDepartment: "Accounting",
		EmployeeName:     "Dela Cruz, Juan",
		PositionTitle:    "Administrative Aide",
		DateOfFiling:     "2025-05-20",

		LeaveTypeID:   1,
		LeaveTypeCode: "VL",
		LeaveTypeName: "Vacation Leave",

		VacationLocationType:   &location,
		VacationLocationDetail: &detail,

		NumWorkingDays:     5,
		InclusiveDateStart: "2025-06-02",
		InclusiveDateEnd:   "2025-06-06",

		CommutationRequested: true,
		Status:               leave.StatusApproved,

		CertVLTotalEarned: &earned,
		CertVLBalance:     &balance,

		ApprovedDaysWithPay:    &withPay,
		ApprovedDaysWithoutPay: &withoutPay,
	}
}

func TestRenderLeaveFormMarksChosenType(t *testing.T) {
	fake := &fakeLeaveService{
		getByIDFn: func(ctx context.Context, applicationID, requesterID string, canReadAll bool) (leave.LeaveApplicationResponse, error) {
			return approvedVacationResponse(), nil
		},
	}
	svc, err := NewService(fake)
	require.NoError(t, err)

	doc, err := svc.RenderLeaveForm(context.Background(), "app-id", "emp-id", false)
	require.NoError(t, err)

	assert.Equal(t, "CS-Form-6-APP-000042.html", doc.Filename)
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)

	body := string(doc.Body)
	assert.Contains(t, body, `<span class="checkbox">`+checkedBox+`</span> Vacation Leave`)
	assert.Contains(t, body, `<span class="checkbox">`+uncheckedBox+`</span> Sick Leave`)
	assert.Contains(t, body, "Dela Cruz, Juan")
	assert.Contains(t, body, "Baguio City")
	assert.Contains(t, body, "APP-000042")
	assert.Contains(t, body, "15.00")
	assert.Contains(t, body, "10.00")
	// no sick details on a vacation application
	assert.Contains(t, body, blankLine)
}

func TestRenderLeaveFormBlanksUnfilledSections(t *testing.T) {
	resp := approvedVacationResponse()
	resp.Status = leave.StatusSubmitted
	resp.ApprovedDaysWithPay = nil
	resp.ApprovedDaysWithoutPay = nil
	resp.CertVLTotalEarned = nil
	resp.CertVLBalance = nil

	fake := &fakeLeaveService{
		getByIDFn: func(ctx context.Context, applicationID, requesterID string, canReadAll bool) (leave.LeaveApplicationResponse, error) {
			return resp, nil
		},
	}
	svc, err := NewService(fake)
	require.NoError(t, err)

	doc, err := svc.RenderLeaveForm(context.Background(), "app-id", "emp-id", false)
	require.NoError(t, err)

	body := string(doc.Body)
	assert.NotContains(t, body, "15.00")
	assert.Greater(t, strings.Count(body, blankLine), 5)
}

func TestRenderLeaveFormPropagatesReadDenial(t *testing.T) {
	fake := &fakeLeaveService{
		getByIDFn: func(ctx context.Context, applicationID, requesterID string, canReadAll bool) (leave.LeaveApplicationResponse, error) {
			return leave.LeaveApplicationResponse{}, leaveerrors.ErrForbiddenApplicationRead
		},
	}
	svc, err := NewService(fake)
	require.NoError(t, err)

	_, err = svc.RenderLeaveForm(context.Background(), "app-id", "someone-else", false)
	assert.ErrorIs(t, err, leaveerrors.ErrForbiddenApplicationRead)
}
