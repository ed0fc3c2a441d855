package document

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/VonnAirone/leave-management-system/internal/leave"
	"github.com/VonnAirone/leave-management-system/internal/leavetype"

	"go.uber.org/zap"
)

const (
	checkedBox   = "☒" // &#9746;
	uncheckedBox = "☐" // &#9744;
	blankLine    = "____________________"
)

// RenderedDocument is a self-contained HTML file ready for download.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock

type Service interface {
	RenderLeaveForm(ctx context.Context, applicationID, requesterID string, canReadAll bool) (RenderedDocument, error)
}

type service struct {
	leaveService leave.Service
	tmpl         *template.Template
	logger       *zap.Logger
}

func NewService(leaveService leave.Service, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}

	tmpl, err := template.New("form6").Parse(form6Template)
	if err != nil {
		return nil, err
	}
	return &service{leaveService: leaveService, tmpl: tmpl, logger: l}, nil
}

type leaveTypeChoice struct {
	Mark  string
	Label string
}

type form6Data struct {
	ApplicationNumber string
	OfficeDepartment  string
	EmployeeName      string
	PositionTitle     string
	Salary            string
	DateOfFiling      string

	LeaveTypeChoices []leaveTypeChoice
	OthersMark       string
	LeaveTypeOthers  string

	WithinPHMark         string
	AbroadMark           string
	VacationWithinDetail string
	VacationAbroadDetail string
	InHospitalMark       string
	OutPatientMark       string
	SickInHospitalDetail string
	SickOutPatientDetail string
	SpecialLeaveIllness  string
	MastersMark          string
	BarReviewMark        string
	MonetizationMark     string
	TerminalLeaveMark    string

	NumWorkingDays     int
	InclusiveDateStart string
	InclusiveDateEnd   string

	CommutationRequestedMark    string
	CommutationNotRequestedMark string

	CertAsOfDate      string
	CertVLTotalEarned string
	CertVLLessThis    string
	CertVLBalance     string
	CertSLTotalEarned string
	CertSLLessThis    string
	CertSLBalance     string

	RecommendApprovalMark           string
	RecommendDisapprovalMark        string
	RecommendationDisapprovalReason string

	ApprovedDaysWithPay    string
	ApprovedDaysWithoutPay string
	ApprovedOthers         string
	DisapprovalReason      string
}

func (s *service) RenderLeaveForm(ctx context.Context, applicationID, requesterID string, canReadAll bool) (RenderedDocument, error) {
	app, err := s.leaveService.GetByID(ctx, applicationID, requesterID, canReadAll)
	if err != nil {
		return RenderedDocument{}, err
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, buildFormData(app)); err != nil {
		s.logger.Error("render leave form failed",
			zap.String("application_number", app.ApplicationNumber),
			zap.Error(err),
		)
		return RenderedDocument{}, err
	}

	return RenderedDocument{
		Filename:    fmt.Sprintf("CS-Form-6-%s.html", app.ApplicationNumber),
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

func mark(on bool) string {
	if on {
		return checkedBox
	}
	return uncheckedBox
}

func orBlank(s *string) string {
	if s == nil || *s == "" {
		return blankLine
	}
	return *s
}

func floatOrBlank(v *float64) string {
	if v == nil {
		return blankLine
	}
	return fmt.Sprintf("%.2f", *v)
}

func buildFormData(app leave.LeaveApplicationResponse) form6Data {
	data := form6Data{
		ApplicationNumber: app.ApplicationNumber,
		OfficeDepartment:  app.OfficeDepartment,
		EmployeeName:      app.EmployeeName,
		PositionTitle:     app.PositionTitle,
		Salary:            orBlank(app.Salary),
		DateOfFiling:      app.DateOfFiling,

		OthersMark:      mark(app.LeaveTypeCode == leavetype.CodeOthers),
		LeaveTypeOthers: orBlank(app.LeaveTypeOthers),

		SpecialLeaveIllness: orBlank(app.SpecialLeaveIllness),
		MastersMark:         mark(app.StudyLeaveMasters),
		BarReviewMark:       mark(app.StudyLeaveBarReview),
		MonetizationMark:    mark(app.OtherMonetization),
		TerminalLeaveMark:   mark(app.OtherTerminalLeave),

		NumWorkingDays:     app.NumWorkingDays,
		InclusiveDateStart: app.InclusiveDateStart,
		InclusiveDateEnd:   app.InclusiveDateEnd,

		CommutationRequestedMark:    mark(app.CommutationRequested),
		CommutationNotRequestedMark: mark(!app.CommutationRequested),

		CertAsOfDate:      orBlank(app.CertAsOfDate),
		CertVLTotalEarned: floatOrBlank(app.CertVLTotalEarned),
		CertVLLessThis:    floatOrBlank(app.CertVLLessThis),
		CertVLBalance:     floatOrBlank(app.CertVLBalance),
		CertSLTotalEarned: floatOrBlank(app.CertSLTotalEarned),
		CertSLLessThis:    floatOrBlank(app.CertSLLessThis),
		CertSLBalance:     floatOrBlank(app.CertSLBalance),

		RecommendApprovalMark:           mark(app.Status == leave.StatusApproved),
		RecommendDisapprovalMark:        mark(app.Status == leave.StatusRejected),
		RecommendationDisapprovalReason: orBlank(app.RecommendationDisapprovalReason),

		ApprovedDaysWithPay:    floatOrBlank(app.ApprovedDaysWithPay),
		ApprovedDaysWithoutPay: floatOrBlank(app.ApprovedDaysWithoutPay),
		ApprovedOthers:         orBlank(app.ApprovedOthers),
		DisapprovalReason:      orBlank(app.DisapprovalReason),
	}

	for _, t := range leavetype.DefaultCatalog {
		if t.Code == leavetype.CodeOthers {
			continue
		}
		data.LeaveTypeChoices = append(data.LeaveTypeChoices, leaveTypeChoice{
			Mark:  mark(t.Code == app.LeaveTypeCode),
			Label: t.Name,
		})
	}

	withinPH := app.VacationLocationType != nil && *app.VacationLocationType == leave.LocationWithinPH
	abroad := app.VacationLocationType != nil && *app.VacationLocationType == leave.LocationAbroad
	data.WithinPHMark = mark(withinPH)
	data.AbroadMark = mark(abroad)
	data.VacationWithinDetail = blankLine
	data.VacationAbroadDetail = blankLine
	if withinPH {
		data.VacationWithinDetail = orBlank(app.VacationLocationDetail)
	}
	if abroad {
		data.VacationAbroadDetail = orBlank(app.VacationLocationDetail)
	}

	inHospital := app.SickLeaveType != nil && *app.SickLeaveType == leave.SickInHospital
	outPatient := app.SickLeaveType != nil && *app.SickLeaveType == leave.SickOutPatient
	data.InHospitalMark = mark(inHospital)
	data.OutPatientMark = mark(outPatient)
	data.SickInHospitalDetail = blankLine
	data.SickOutPatientDetail = blankLine
	if inHospital {
		data.SickInHospitalDetail = orBlank(app.SickLeaveIllness)
	}
	if outPatient {
		data.SickOutPatientDetail = orBlank(app.SickLeaveIllness)
	}

	return data
}
