package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperex/case-analysis/internal/core/domain"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestNewPlan_Defaults(t *testing.T) {
	plan := NewPlan(Filter{}, Page{}, now)

	assert.Equal(t, 0, plan.Skip)
	assert.Equal(t, DefaultLimit, plan.Limit)
	assert.Nil(t, plan.MaxFoundingYear)
	assert.Empty(t, plan.SortKeys)
}

func TestNewPlan_LimitCeiling(t *testing.T) {
	assert.Equal(t, MaxLimit, NewPlan(Filter{}, Page{Limit: 500}, now).Limit)
	assert.Equal(t, 40, NewPlan(Filter{}, Page{Limit: 40, Offset: 20}, now).Limit)
	assert.Equal(t, 0, NewPlan(Filter{}, Page{Offset: -3}, now).Skip)
}

func TestNewPlan_SortModes(t *testing.T) {
	cases := []struct {
		sort Sort
		want []SortKey
	}{
		{SortNameAsc, []SortKey{{FieldName, Asc}}},
		{SortNameDesc, []SortKey{{FieldName, Desc}}},
		{SortExperience, []SortKey{{FieldFoundingYear, Asc}}},
		{SortNone, nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewPlan(Filter{Sort: tc.sort}, Page{}, now).SortKeys, string(tc.sort))
	}
}

func TestNewPlan_YearsOfExperienceBecomesFoundingYearBound(t *testing.T) {
	plan := NewPlan(Filter{MinYearsOfExperience: intPtr(10)}, Page{}, now)

	require.NotNil(t, plan.MaxFoundingYear)
	assert.Equal(t, 2014, *plan.MaxFoundingYear)

	// The stored snapshot is ignored: a company founded in 2014 qualifies even
	// if it was registered years ago with a smaller yearsOfExperience.
	stale := domain.Enterprise{FoundingYear: 2014, YearsOfExperience: 3}
	assert.True(t, plan.Matches(stale))
	assert.False(t, plan.Matches(domain.Enterprise{FoundingYear: 2015, YearsOfExperience: 50}))
}

func TestPlan_MatchesIsConjunctive(t *testing.T) {
	plan := NewPlan(Filter{Category: "Tech", ImpactLevel: domain.ImpactHigh}, Page{}, now)

	assert.True(t, plan.Matches(domain.Enterprise{Category: "Tech", ImpactLevel: domain.ImpactHigh}))
	assert.False(t, plan.Matches(domain.Enterprise{Category: "Tech", ImpactLevel: domain.ImpactLow}))
	assert.False(t, plan.Matches(domain.Enterprise{Category: "Food", ImpactLevel: domain.ImpactHigh}))
}

func TestNewUnpagedPlan(t *testing.T) {
	plan := NewUnpagedPlan(Filter{Sort: SortNameAsc}, now)

	assert.Equal(t, 0, plan.Skip)
	assert.Equal(t, 0, plan.Limit)
	assert.Len(t, plan.SortKeys, 1)
}

func TestProject(t *testing.T) {
	in := []domain.Enterprise{{Name: "A", FoundingYear: 2010, YearsOfExperience: 1}}

	out := Project(in, now)

	assert.Equal(t, 14, out[0].YearsOfExperience)
	assert.Equal(t, 1, in[0].YearsOfExperience, "input must not be mutated")
}
