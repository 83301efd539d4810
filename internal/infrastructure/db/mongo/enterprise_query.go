package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/query"
)

// nameCollation orders names the way a Spanish-speaking reader expects,
// ignoring case and accents.
var nameCollation = &options.Collation{Locale: "es", Strength: 1}

// planFilter translates the plan's conjunctive filters into a query document.
func planFilter(p query.Plan) bson.M {
	filter := bson.M{}
	if p.Category != "" {
		filter[query.FieldCategory] = p.Category
	}
	if p.ImpactLevel != "" {
		filter[query.FieldImpactLevel] = string(p.ImpactLevel)
	}
	if p.MaxFoundingYear != nil {
		filter[query.FieldFoundingYear] = bson.M{"$lte": *p.MaxFoundingYear}
	}
	return filter
}

// planOptions translates ordering and pagination. Sort keys are never unique,
// so _id closes every ordering; a paged listing without a sort mode is
// ordered by _id alone.
func planOptions(p query.Plan) *options.FindOptions {
	opts := options.Find()
	paged := p.Skip > 0 || p.Limit > 0
	if len(p.SortKeys) > 0 || paged {
		sort := bson.D{}
		for _, k := range p.SortKeys {
			sort = append(sort, bson.E{Key: k.Field, Value: int(k.Direction)})
			if k.Field == query.FieldName {
				opts.SetCollation(nameCollation)
			}
		}
		opts.SetSort(append(sort, bson.E{Key: "_id", Value: 1}))
	}
	if p.Skip > 0 {
		opts.SetSkip(int64(p.Skip))
	}
	if p.Limit > 0 {
		opts.SetLimit(int64(p.Limit))
	}
	return opts
}

// updateSet translates the non-nil fields of a patch into a $set document.
func updateSet(p domain.EnterprisePatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Website != nil {
		set["website"] = *p.Website
	}
	if p.ImpactLevel != nil {
		set[query.FieldImpactLevel] = string(*p.ImpactLevel)
	}
	if p.FoundingYear != nil {
		set[query.FieldFoundingYear] = *p.FoundingYear
	}
	if p.Category != nil {
		set[query.FieldCategory] = *p.Category
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.SocialMedia != nil {
		set["socialMedia"] = socialMediaDoc{Facebook: p.SocialMedia.Facebook, Instagram: p.SocialMedia.Instagram}
	}
	return set
}
