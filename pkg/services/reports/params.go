package reports

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/library-reports/pkg/models/domain"
)

const (
	ParamPage    = "page"
	ParamSearch  = "search"
	ParamMinDays = "min_days"

	DefaultPage     = 1
	MaxSearchLength = 100
)

// MaxPage keeps (page-1)*PageSize within a 32-bit signed offset.
const MaxPage = math.MaxInt32 / PageSize

// ParseRequest validates raw query parameters. Absent and empty values fall
// back to their defaults; present values that fail validation are reported
// together in a single *ValidationError.
func ParseRequest(reportID string, values url.Values) (domain.ReportRequest, error) {
	req := domain.ReportRequest{
		ReportID: reportID,
		Page:     DefaultPage,
	}
	var violations []FieldViolation

	if raw, ok, v := single(values, ParamPage); v != nil {
		violations = append(violations, *v)
	} else if ok {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, FieldViolation{Field: ParamPage, Reason: "must be an integer"})
		case page < 1:
			violations = append(violations, FieldViolation{Field: ParamPage, Reason: "must be at least 1"})
		case page > MaxPage:
			violations = append(violations, FieldViolation{
				Field:  ParamPage,
				Reason: "must be at most " + strconv.Itoa(MaxPage),
			})
		default:
			req.Page = page
		}
	}

	if raw, ok, v := single(values, ParamSearch); v != nil {
		violations = append(violations, *v)
	} else if ok {
		if utf8.RuneCountInString(raw) > MaxSearchLength {
			violations = append(violations, FieldViolation{
				Field:  ParamSearch,
				Reason: "must be at most " + strconv.Itoa(MaxSearchLength) + " characters",
			})
		} else {
			req.Search = &raw
		}
	}

	if raw, ok, v := single(values, ParamMinDays); v != nil {
		violations = append(violations, *v)
	} else if ok {
		days, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, FieldViolation{Field: ParamMinDays, Reason: "must be an integer"})
		case days < 0:
			violations = append(violations, FieldViolation{Field: ParamMinDays, Reason: "must not be negative"})
		default:
			req.MinDays = &days
		}
	}

	if len(violations) > 0 {
		return domain.ReportRequest{}, &ValidationError{Violations: violations}
	}
	return req, nil
}

// single returns the trimmed value of key. ok is false when the key is absent
// or blank; a repeated key yields a violation.
func single(values url.Values, key string) (string, bool, *FieldViolation) {
	raw, present := values[key]
	if !present || len(raw) == 0 {
		return "", false, nil
	}
	if len(raw) > 1 {
		return "", false, &FieldViolation{Field: key, Reason: "must be given at most once"}
	}
	value := strings.TrimSpace(raw[0])
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}
