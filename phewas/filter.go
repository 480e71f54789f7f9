package phewas

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Thresholds are optional, inclusive cutoffs. MAF and CaseCount are floors,
// PValue is a ceiling.
type Thresholds struct {
	MAF       null.Float
	CaseCount null.Float
	PValue    null.Float
}

// Passes reports whether the record satisfies every configured threshold. A
// threshold is only applied when both the cutoff and its column are present.
func (t Thresholds) Passes(rec Record, cols Columns) (bool, error) {
	if t.CaseCount.Valid && cols.CaseCount.Valid {
		v, err := ParseFloat(rec, cols.CaseCount, RoleCaseCount)
		if err != nil {
			return false, err
		}
		if v < t.CaseCount.Float64 {
			return false, nil
		}
	}

	if t.MAF.Valid && cols.MAF.Valid {
		v, err := ParseFloat(rec, cols.MAF, RoleMAF)
		if err != nil {
			return false, err
		}
		if v < t.MAF.Float64 {
			return false, nil
		}
	}

	if t.PValue.Valid && cols.PValue.Valid {
		v, err := ParseFloat(rec, cols.PValue, RolePValue)
		if err != nil {
			return false, err
		}
		if v > t.PValue.Float64 {
			return false, nil
		}
	}

	return true, nil
}

// ParseFloat parses the field at idx as a float64.
func ParseFloat(rec Record, idx null.Int, role Role) (float64, error) {
	raw := rec.Field(idx.Int64)
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{Role: role, Value: raw, Err: err}
	}

	return v, nil
}
