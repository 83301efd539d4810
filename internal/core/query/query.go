// Package query turns enterprise list parameters into a storage-agnostic
// plan: conjunctive filters, ordering and pagination.
package query

import (
	"time"

	"github.com/coperex/case-analysis/internal/core/domain"
)

const (
	DefaultLimit = 15
	MaxLimit     = 100
)

// Sort selects the ordering of a listing.
type Sort string

const (
	SortNone       Sort = ""
	SortNameAsc    Sort = "nameAZ"
	SortNameDesc   Sort = "nameZA"
	SortExperience Sort = "experience"
)

// Valid reports whether s is a supported sort mode.
func (s Sort) Valid() bool {
	switch s {
	case SortNone, SortNameAsc, SortNameDesc, SortExperience:
		return true
	default:
		return false
	}
}

// Filter holds the optional listing criteria. All set criteria must match.
type Filter struct {
	Category             string
	ImpactLevel          domain.ImpactLevel
	MinYearsOfExperience *int
	Sort                 Sort
}

// Page is an offset/limit window. Zero values select the defaults.
type Page struct {
	Offset int
	Limit  int
}

// Direction is the ordering direction of a sort key.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// SortKey orders results by a stored field.
type SortKey struct {
	Field     string
	Direction Direction
}

// Field names used by plans; they match the persisted document keys.
const (
	FieldName         = "name"
	FieldCategory     = "category"
	FieldImpactLevel  = "impactLevel"
	FieldFoundingYear = "foundingYear"
)

// Plan is the resolved query handed to a repository.
type Plan struct {
	Category        string
	ImpactLevel     domain.ImpactLevel
	MaxFoundingYear *int
	SortKeys        []SortKey
	Skip            int
	// Limit of 0 means no limit.
	Limit int
}

// NewPlan resolves filter and page against now. The years-of-experience
// threshold becomes an upper bound on the founding year so that the stored
// snapshot of yearsOfExperience is never consulted.
func NewPlan(f Filter, p Page, now time.Time) Plan {
	plan := Plan{
		Category:    f.Category,
		ImpactLevel: f.ImpactLevel,
		SortKeys:    sortKeys(f.Sort),
		Skip:        p.Offset,
		Limit:       p.Limit,
	}
	if plan.Skip < 0 {
		plan.Skip = 0
	}
	switch {
	case plan.Limit <= 0:
		plan.Limit = DefaultLimit
	case plan.Limit > MaxLimit:
		plan.Limit = MaxLimit
	}
	if f.MinYearsOfExperience != nil {
		maxYear := now.Year() - *f.MinYearsOfExperience
		plan.MaxFoundingYear = &maxYear
	}
	return plan
}

// NewUnpagedPlan is NewPlan without pagination, used for full exports.
func NewUnpagedPlan(f Filter, now time.Time) Plan {
	plan := NewPlan(f, Page{}, now)
	plan.Skip = 0
	plan.Limit = 0
	return plan
}

func sortKeys(s Sort) []SortKey {
	switch s {
	case SortNameAsc:
		return []SortKey{{Field: FieldName, Direction: Asc}}
	case SortNameDesc:
		return []SortKey{{Field: FieldName, Direction: Desc}}
	case SortExperience:
		return []SortKey{{Field: FieldFoundingYear, Direction: Asc}}
	default:
		return nil
	}
}

// Matches reports whether e satisfies the plan's filters.
func (p Plan) Matches(e domain.Enterprise) bool {
	if p.Category != "" && e.Category != p.Category {
		return false
	}
	if p.ImpactLevel != "" && e.ImpactLevel != p.ImpactLevel {
		return false
	}
	if p.MaxFoundingYear != nil && e.FoundingYear > *p.MaxFoundingYear {
		return false
	}
	return true
}

// Project recomputes the derived fields of every record against now.
func Project(records []domain.Enterprise, now time.Time) []domain.Enterprise {
	out := make([]domain.Enterprise, len(records))
	for i, e := range records {
		out[i] = e.Project(now)
	}
	return out
}
