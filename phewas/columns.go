package phewas

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Role identifies what a column of a PheWAS result file means to us.
type Role int

const (
	RolePhenotype Role = iota
	RoleSNP
	RolePValue
	RoleMAF
	RoleCaseCount
)

var roleNames = map[Role]string{
	RolePhenotype: "phenotype",
	RoleSNP:       "SNP",
	RolePValue:    "p-value",
	RoleMAF:       "MAF",
	RoleCaseCount: "case count",
}

func (r Role) String() string {
	if name, exists := roleNames[r]; exists {
		return name
	}

	return "unknown"
}

// ColumnNames holds the header names that the user told us to look for. An
// empty name means that the role is not configured.
type ColumnNames struct {
	Phenotype string
	SNP       string
	PValue    string
	MAF       string
	CaseCount string
}

func (n ColumnNames) name(r Role) string {
	switch r {
	case RolePhenotype:
		return n.Phenotype
	case RoleSNP:
		return n.SNP
	case RolePValue:
		return n.PValue
	case RoleMAF:
		return n.MAF
	case RoleCaseCount:
		return n.CaseCount
	}

	return ""
}

// Validate checks the configuration before any file is opened.
func (n ColumnNames) Validate(requirePhenotype bool) error {
	if n.SNP == "" {
		return &MissingColumnError{Role: RoleSNP}
	}

	if requirePhenotype && n.Phenotype == "" {
		return &MissingColumnError{Role: RolePhenotype}
	}

	return nil
}

// Columns maps each role to its 0-based index within a header. Roles that
// were not configured or not found are null.
type Columns struct {
	Phenotype null.Int
	SNP       null.Int
	PValue    null.Int
	MAF       null.Int
	CaseCount null.Int
}

// Index returns the column for the role, or null.
func (c Columns) Index(r Role) null.Int {
	switch r {
	case RolePhenotype:
		return c.Phenotype
	case RoleSNP:
		return c.SNP
	case RolePValue:
		return c.PValue
	case RoleMAF:
		return c.MAF
	case RoleCaseCount:
		return c.CaseCount
	}

	return null.Int{}
}

func (c *Columns) set(r Role, i int) {
	v := null.IntFrom(int64(i))

	switch r {
	case RolePhenotype:
		c.Phenotype = v
	case RoleSNP:
		c.SNP = v
	case RolePValue:
		c.PValue = v
	case RoleMAF:
		c.MAF = v
	case RoleCaseCount:
		c.CaseCount = v
	}
}

// MaxIndex is the largest resolved column index. A data row needs at least
// MaxIndex()+1 fields.
func (c Columns) MaxIndex() int {
	max := -1
	for _, r := range allRoles {
		if idx := c.Index(r); idx.Valid && int(idx.Int64) > max {
			max = int(idx.Int64)
		}
	}

	return max
}

var allRoles = []Role{RolePhenotype, RoleSNP, RolePValue, RoleMAF, RoleCaseCount}

// ResolveColumns scans the header from left to right and assigns each
// configured role to the first column whose (trimmed) name matches. Later
// duplicates are ignored. The SNP column is mandatory; the phenotype column is
// mandatory when requirePhenotype is set.
func ResolveColumns(source string, header Record, names ColumnNames, requirePhenotype bool) (Columns, error) {
	var cols Columns

	for i, field := range header {
		field = strings.TrimRight(field, " \t\r\n")

		for _, r := range allRoles {
			name := names.name(r)
			if name == "" || field != name || cols.Index(r).Valid {
				continue
			}

			cols.set(r, i)
		}
	}

	if !cols.SNP.Valid {
		return cols, &MissingColumnError{Source: source, Role: RoleSNP, Name: names.SNP, Header: header}
	}

	if requirePhenotype && !cols.Phenotype.Valid {
		return cols, &MissingColumnError{Source: source, Role: RolePhenotype, Name: names.Phenotype, Header: header}
	}

	return cols, nil
}
