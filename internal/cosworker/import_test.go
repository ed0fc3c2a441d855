package cosworker

import (
	"bytes"
	"strings"
	"testing"

	cosworkererrors "github.com/VonnAirone/leave-management-system/internal/cosworker/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbookFilipinoHeaders(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Pangalan", "Apelyido", "Kasarian", "Opisina", "Posisyon", "Contract Start", "Contract End"},
		{"Maria", "Santos", "babae", "Treasury", "Clerk", "2025-01-06", "2025-12-31"},
	})

	rows, rowErrors, err := ParseWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Row)

	req := rows[0].Request
	assert.Equal(t, "Maria", req.FirstName)
	assert.Equal(t, "Santos", req.LastName)
	assert.Equal(t, "Treasury", req.Office)
	assert.Equal(t, "Clerk", req.PositionTitle)
	require.NotNil(t, req.Sex)
	assert.Equal(t, SexFemale, *req.Sex)
	assert.Equal(t, "2025-01-06", req.ContractStart)
	assert.Equal(t, "2025-12-31", req.ContractEnd)
}

func TestParseWorkbookSerialDates(t *testing.T) {
	// 45658 and 46022 are the Excel serials for 2025-01-01 and 2025-12-31.
	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End"},
		{"Jose", "Reyes", "Engineering", "Laborer", "45658", "46022"},
	})

	rows, rowErrors, err := ParseWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 1)

	assert.Equal(t, "2025-01-01", rows[0].Request.ContractStart)
	assert.Equal(t, "2025-12-31", rows[0].Request.ContractEnd)
}

func TestParseWorkbookCategoricalFallbacks(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End", "Employment Type", "Fund Source", "Monthly Rate", "Sex"},
		{"Pedro", "Cruz", "Motorpool", "Driver", "2025-01-06", "2025-06-30", "JO", "General Fund", "₱15,000.00", "lalaki"},
		{"Ana", "Lopez", "Assessor", "Aide", "2025-01-06", "2025-06-30", "something else", "unknown", "", "f"},
	})

	rows, rowErrors, err := ParseWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 2)

	pedro := rows[0].Request
	require.NotNil(t, pedro.EmploymentType)
	assert.Equal(t, EmploymentJobOrder, *pedro.EmploymentType)
	require.NotNil(t, pedro.FundSource)
	assert.Equal(t, "gf", *pedro.FundSource)
	require.NotNil(t, pedro.MonthlyRate)
	assert.Equal(t, 15000.0, *pedro.MonthlyRate)
	require.NotNil(t, pedro.Sex)
	assert.Equal(t, SexMale, *pedro.Sex)

	ana := rows[1].Request
	require.NotNil(t, ana.EmploymentType)
	assert.Equal(t, EmploymentCOS, *ana.EmploymentType)
	require.NotNil(t, ana.FundSource)
	assert.Equal(t, "mooe", *ana.FundSource)
	assert.Nil(t, ana.MonthlyRate)
	require.NotNil(t, ana.Sex)
	assert.Equal(t, SexFemale, *ana.Sex)
}

func TestParseWorkbookReportsBadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End"},
		{"Juan", "Garcia", "Accounting", "Clerk", "2025-01-06", "2025-06-30"},
		{"", "", ""}, // blank row, skipped silently
		{"Liza", "", "Accounting", "", "not a date", "2025-06-30"},
	})

	rows, rowErrors, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Row)
	require.Len(t, rowErrors, 1)

	assert.Equal(t, 4, rowErrors[0].Row)
	assert.True(t, strings.HasPrefix(rowErrors[0].Reason, "missing or unreadable:"))
	assert.Contains(t, rowErrors[0].Reason, "last name")
	assert.Contains(t, rowErrors[0].Reason, "position")
	assert.Contains(t, rowErrors[0].Reason, "contract start")
}

func TestParseWorkbookEmptySheet(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name"},
	})

	_, _, err := ParseWorkbook(buf)
	assert.ErrorIs(t, err, cosworkererrors.ErrEmptyWorkbook)
}

func TestParseWorkbookGarbageInput(t *testing.T) {
	_, _, err := ParseWorkbook(strings.NewReader("this is not an xlsx file"))
	assert.ErrorIs(t, err, cosworkererrors.ErrUnreadableWorkbook)
}

func TestParseCellDateWindow(t *testing.T) {
	// serials outside the 1982..2064 window are not dates
	_, ok := parseCellDate("123")
	assert.False(t, ok)

	_, ok = parseCellDate("99999")
	assert.False(t, ok)

	d, ok := parseCellDate("01/06/2025")
	require.True(t, ok)
	assert.Equal(t, "2025-01-06", d.Format(dateLayout))
}
