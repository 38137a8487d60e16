package department

import "context"

// UnknownDepartment is the grouping bucket for employees whose department
// field resolves to neither a known id nor a known name.
const UnknownDepartment = "Unknown Department"

// Department maps an id to a display name.
type Department struct {
	ID        string
	CompanyID string
	Name      string
}

type DepartmentRepository interface {
	// ListByCompany returns all departments for a company.
	ListByCompany(ctx context.Context, companyID string) ([]Department, error)
}

// Resolver resolves an employee's raw department field, which historically
// holds either an id or a name, to a canonical name. Built once per rollup.
type Resolver struct {
	idToName   map[string]string
	nameToName map[string]string
}

// NewResolver builds the lookup tables from the company's departments.
func NewResolver(departments []Department) *Resolver {
	r := &Resolver{
		idToName:   make(map[string]string, len(departments)),
		nameToName: make(map[string]string, len(departments)),
	}
	for _, d := range departments {
		r.idToName[d.ID] = d.Name
		r.nameToName[d.Name] = d.Name
	}
	return r
}

// Resolve returns the canonical department name for a raw field value.
func (r *Resolver) Resolve(raw *string) string {
	if raw == nil || *raw == "" {
		return UnknownDepartment
	}
	if name, ok := r.idToName[*raw]; ok {
		return name
	}
	if name, ok := r.nameToName[*raw]; ok {
		return name
	}
	return *raw
}
