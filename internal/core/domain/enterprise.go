package domain

import "time"

// ImpactLevel grades how much an enterprise contributes to the fair.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "Alto"
	ImpactMedium ImpactLevel = "Medio"
	ImpactLow    ImpactLevel = "Bajo"
)

// MinFoundingYear is the earliest founding year accepted for an enterprise.
const MinFoundingYear = 1800

// Valid reports whether l is one of the declared impact levels.
func (l ImpactLevel) Valid() bool {
	switch l {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	default:
		return false
	}
}

// SocialMedia holds optional profile links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"  bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// Enterprise is a company registered for the fair.
//
// YearsOfExperience is derived from FoundingYear. The stored value is only a
// snapshot taken at registration; readers call Project before returning it.
type Enterprise struct {
	ID                string      `json:"uid"`
	Name              string      `json:"name"              validate:"required,max=50"`
	Email             string      `json:"email"             validate:"required,email"`
	Phone             string      `json:"phone"             validate:"required,min=8,max=15"`
	Address           string      `json:"address"           validate:"required,max=100"`
	Website           string      `json:"website,omitempty" validate:"omitempty,http_url"`
	ImpactLevel       ImpactLevel `json:"impactLevel"       validate:"required,oneof=Alto Medio Bajo"`
	FoundingYear      int         `json:"foundingYear"      validate:"required,min=1800,notfuture"`
	YearsOfExperience int         `json:"yearsOfExperience"`
	Category          string      `json:"category"          validate:"required"`
	Description       string      `json:"description,omitempty" validate:"max=500"`
	SocialMedia       SocialMedia `json:"socialMedia"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// YearsOfExperience returns the number of whole calendar years between
// foundingYear and now.
func YearsOfExperience(foundingYear int, now time.Time) int {
	return now.Year() - foundingYear
}

// Project returns a copy of e with the derived fields recomputed against now.
func (e Enterprise) Project(now time.Time) Enterprise {
	e.YearsOfExperience = YearsOfExperience(e.FoundingYear, now)
	return e
}

// EnterprisePatch carries the mutable fields of a partial update. Nil fields
// are left untouched.
type EnterprisePatch struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	Website      *string
	ImpactLevel  *ImpactLevel
	FoundingYear *int
	Category     *string
	Description  *string
	SocialMedia  *SocialMedia
}

// Empty reports whether the patch sets no field at all.
func (p EnterprisePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.Website == nil && p.ImpactLevel == nil && p.FoundingYear == nil &&
		p.Category == nil && p.Description == nil && p.SocialMedia == nil
}

// Apply writes the patch onto e and returns the names of the fields it set,
// using the Go field names so callers can validate only those.
func (p EnterprisePatch) Apply(e *Enterprise) []string {
	var set []string
	if p.Name != nil {
		e.Name = *p.Name
		set = append(set, "Name")
	}
	if p.Email != nil {
		e.Email = *p.Email
		set = append(set, "Email")
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
		set = append(set, "Phone")
	}
	if p.Address != nil {
		e.Address = *p.Address
		set = append(set, "Address")
	}
	if p.Website != nil {
		e.Website = *p.Website
		set = append(set, "Website")
	}
	if p.ImpactLevel != nil {
		e.ImpactLevel = *p.ImpactLevel
		set = append(set, "ImpactLevel")
	}
	if p.FoundingYear != nil {
		e.FoundingYear = *p.FoundingYear
		set = append(set, "FoundingYear")
	}
	if p.Category != nil {
		e.Category = *p.Category
		set = append(set, "Category")
	}
	if p.Description != nil {
		e.Description = *p.Description
		set = append(set, "Description")
	}
	if p.SocialMedia != nil {
		e.SocialMedia = *p.SocialMedia
		set = append(set, "SocialMedia")
	}
	return set
}
