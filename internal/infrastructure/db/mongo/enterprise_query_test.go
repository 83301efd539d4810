package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/query"
)

var now = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestPlanFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, planFilter(query.NewPlan(query.Filter{}, query.Page{}, now)))
}

func TestPlanFilter_AllCriteria(t *testing.T) {
	years := 5
	plan := query.NewPlan(query.Filter{
		Category:             "Tech",
		ImpactLevel:          domain.ImpactHigh,
		MinYearsOfExperience: &years,
	}, query.Page{}, now)

	assert.Equal(t, bson.M{
		"category":     "Tech",
		"impactLevel":  "Alto",
		"foundingYear": bson.M{"$lte": 2019},
	}, planFilter(plan))
}

func TestPlanOptions_NameSortUsesCollation(t *testing.T) {
	opts := planOptions(query.NewPlan(query.Filter{Sort: query.SortNameDesc}, query.Page{Offset: 30, Limit: 10}, now))

	assert.Equal(t, bson.D{{Key: "name", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)
	require.NotNil(t, opts.Collation)
	assert.Equal(t, "es", opts.Collation.Locale)
	require.NotNil(t, opts.Skip)
	assert.EqualValues(t, 30, *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 10, *opts.Limit)
}

func TestPlanOptions_ExperienceSort(t *testing.T) {
	opts := planOptions(query.NewPlan(query.Filter{Sort: query.SortExperience}, query.Page{}, now))

	assert.Equal(t, bson.D{{Key: "foundingYear", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Collation)
	assert.Nil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, query.DefaultLimit, *opts.Limit)
}

func TestPlanOptions_PagedWithoutSortOrdersByID(t *testing.T) {
	opts := planOptions(query.NewPlan(query.Filter{}, query.Page{Offset: 15}, now))

	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Collation)
}

func TestPlanOptions_SortedExportKeepsTieBreaker(t *testing.T) {
	opts := planOptions(query.NewUnpagedPlan(query.Filter{Sort: query.SortNameAsc}, now))

	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Limit)
}

func TestPlanOptions_UnpagedHasNoLimit(t *testing.T) {
	opts := planOptions(query.NewUnpagedPlan(query.Filter{}, now))

	assert.Nil(t, opts.Sort)
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Skip)
}

func TestUpdateSet_OnlyPatchedFields(t *testing.T) {
	name := "NewName"
	impact := domain.ImpactLow
	set := updateSet(domain.EnterprisePatch{Name: &name, ImpactLevel: &impact})

	assert.Equal(t, bson.M{"name": "NewName", "impactLevel": "Bajo"}, set)
}
