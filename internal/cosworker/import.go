package cosworker

import (
	"io"
	"strconv"
	"strings"
	"time"

	cosworkererrors "github.com/VonnAirone/leave-management-system/internal/cosworker/errors"

	"github.com/xuri/excelize/v2"
)

// Spreadsheets arrive from field offices with inconsistent headers, often in
// Filipino. Each canonical column carries the synonyms seen in practice;
// matching is case-insensitive on the normalized header text.
var headerSynonyms = map[string][]string{
	"first_name":     {"first name", "firstname", "given name", "pangalan"},
	"middle_name":    {"middle name", "middlename", "middle initial", "mi"},
	"last_name":      {"last name", "lastname", "surname", "family name", "apelyido"},
	"sex":            {"sex", "gender", "kasarian"},
	"address":        {"address", "home address", "tirahan"},
	"contact_number": {"contact number", "contact no", "contact", "mobile", "phone", "cellphone"},
	"date_of_birth":  {"date of birth", "birthdate", "birthday", "dob", "kaarawan"},
	"office":         {"office", "department", "division", "unit", "opisina", "office/department"},
	"position":       {"position", "position title", "designation", "posisyon"},
	"employment_type": {"employment type", "type of employment", "emp type"},
	"nature_of_hiring": {"nature of hiring", "nature", "hiring nature"},
	"fund_source":    {"fund source", "fund", "source of fund", "funding"},
	"monthly_rate":   {"monthly rate", "monthly salary", "salary", "rate"},
	"contract_start": {"contract start", "start of contract", "date hired", "start date", "from"},
	"contract_end":   {"contract end", "end of contract", "expiry", "expiry date", "end date", "to"},
	"remarks":        {"remarks", "notes", "comment"},
}

// Excel serial date window. Serial 30000 is 1982, 60000 is 2064; anything in
// between is treated as a date rather than a stray number.
const (
	serialDateMin = 30000
	serialDateMax = 60000
	// days between the Excel epoch (1899-12-30) and the Unix epoch
	serialUnixOffset = 25569
)

var importDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
	"2006/01/02",
}

// ImportRow pairs a parsed request with its 1-based sheet row so insert
// failures report the spreadsheet row, not a position in the filtered slice.
type ImportRow struct {
	Row     int
	Request CreateWorkerRequest
}

// ParseWorkbook reads the first sheet of an xlsx workbook into worker create
// requests. Rows missing any required field are reported, not imported.
func ParseWorkbook(r io.Reader) ([]ImportRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, cosworkererrors.ErrUnreadableWorkbook
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, cosworkererrors.ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, cosworkererrors.ErrUnreadableWorkbook
	}
	if len(rows) < 2 {
		return nil, nil, cosworkererrors.ErrEmptyWorkbook
	}

	columns := mapHeaders(rows[0])

	var (
		parsed    []ImportRow
		rowErrors []RowError
	)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header row
		if isBlankRow(row) {
			continue
		}

		req, reason := parseRow(columns, row)
		if reason != "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Reason: reason})
			continue
		}
		parsed = append(parsed, ImportRow{Row: rowNum, Request: req})
	}
	return parsed, rowErrors, nil
}

func mapHeaders(header []string) map[string]int {
	columns := make(map[string]int)
	for idx, cell := range header {
		normalized := normalizeHeader(cell)
		if normalized == "" {
			continue
		}
		for canonical, synonyms := range headerSynonyms {
			if _, taken := columns[canonical]; taken {
				continue
			}
			for _, syn := range synonyms {
				if normalized == syn {
					columns[canonical] = idx
					break
				}
			}
		}
	}
	return columns
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ":.*")
	return strings.Join(strings.Fields(s), " ")
}

func parseRow(columns map[string]int, row []string) (CreateWorkerRequest, string) {
	get := func(key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	req := CreateWorkerRequest{
		FirstName:     get("first_name"),
		LastName:      get("last_name"),
		Office:        get("office"),
		PositionTitle: get("position"),
	}

	var missing []string
	if req.FirstName == "" {
		missing = append(missing, "first name")
	}
	if req.LastName == "" {
		missing = append(missing, "last name")
	}
	if req.Office == "" {
		missing = append(missing, "office")
	}
	if req.PositionTitle == "" {
		missing = append(missing, "position")
	}

	start, startOK := parseCellDate(get("contract_start"))
	if !startOK {
		missing = append(missing, "contract start")
	}
	end, endOK := parseCellDate(get("contract_end"))
	if !endOK {
		missing = append(missing, "contract end")
	}
	if len(missing) > 0 {
		return CreateWorkerRequest{}, "missing or unreadable: " + strings.Join(missing, ", ")
	}
	req.ContractStart = start.Format(dateLayout)
	req.ContractEnd = end.Format(dateLayout)

	if v := get("middle_name"); v != "" {
		req.MiddleName = &v
	}
	if v := parseSex(get("sex")); v != "" {
		req.Sex = &v
	}
	if v := get("address"); v != "" {
		req.Address = &v
	}
	if v := get("contact_number"); v != "" {
		req.ContactNumber = &v
	}
	if dob, ok := parseCellDate(get("date_of_birth")); ok {
		v := dob.Format(dateLayout)
		req.DateOfBirth = &v
	}

	empType := parseEmploymentType(get("employment_type"))
	req.EmploymentType = &empType
	nature := parseNatureOfHiring(get("nature_of_hiring"))
	req.NatureOfHiring = &nature
	fund := parseFundSource(get("fund_source"))
	req.FundSource = &fund

	if rate, err := strconv.ParseFloat(cleanNumber(get("monthly_rate")), 64); err == nil && rate > 0 {
		req.MonthlyRate = &rate
	}
	if v := get("remarks"); v != "" {
		req.Remarks = &v
	}
	return req, ""
}

// parseCellDate accepts Excel serial numbers and the date spellings seen in
// submitted sheets.
func parseCellDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if serial >= serialDateMin && serial <= serialDateMax {
			unix := (int64(serial) - serialUnixOffset) * 86400
			return time.Unix(unix, 0).UTC(), true
		}
		return time.Time{}, false
	}

	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseSex(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "lalaki":
		return SexMale
	case "f", "female", "babae":
		return SexFemale
	default:
		return ""
	}
}

func parseEmploymentType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jo", "job order", "job-order":
		return EmploymentJobOrder
	case "contractual":
		return EmploymentContractual
	default:
		return EmploymentCOS
	}
}

func parseNatureOfHiring(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "permanent", "casual", "temporary":
		return v
	default:
		return "contractual"
	}
}

func parseFundSource(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "gf", "general fund":
		return "gf"
	case "sef":
		return "sef"
	case "trust":
		return "trust"
	default:
		return "mooe"
	}
}

func cleanNumber(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₱")
	s = strings.TrimPrefix(s, "P")
	return strings.TrimSpace(s)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
