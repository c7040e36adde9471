package search

import (
	"github.com/graphcatalog/searchplanner/pkg/catalog"
	"github.com/graphcatalog/searchplanner/pkg/config"
	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/schema"
)

// newFixtureRegistry builds the small type hierarchy the scenarios in
// spec.md §8 are stated against: Asset (base entity) with Table and
// View as subtypes, plus a PIIClassification classification type.
func newFixtureRegistry() *schema.Registry {
	r := schema.NewRegistry()

	r.Register(&schema.TypeMeta{
		Name: "Asset",
		Kind: schema.KindEntity,
		Attributes: map[string]*schema.AttributeMeta{
			"name":      {Name: "name", QualifiedName: "Asset.name", ValueType: model.ValueTypeString},
			"owner":     {Name: "owner", QualifiedName: "Asset.owner", ValueType: model.ValueTypeString},
			"size":      {Name: "size", QualifiedName: "Asset.size", ValueType: model.ValueTypeInt},
			"comment":   {Name: "comment", QualifiedName: "Asset.comment", ValueType: model.ValueTypeString},
			"createdAt": {Name: "createdAt", QualifiedName: "Asset.createdAt", ValueType: model.ValueTypeDate},
		},
	})
	r.Register(&schema.TypeMeta{Name: "Table", Kind: schema.KindEntity, Supertype: "Asset"})
	r.Register(&schema.TypeMeta{Name: "View", Kind: schema.KindEntity, Supertype: "Table"})

	r.Register(&schema.TypeMeta{
		Name: "PIIClassification",
		Kind: schema.KindClassification,
		Attributes: map[string]*schema.AttributeMeta{
			"tag": {Name: "tag", QualifiedName: "Classification.tag", ValueType: model.ValueTypeString},
		},
	})

	r.LinkSubtypes()
	return r
}

func newFixtureCatalog() *catalog.InMemory {
	return catalog.NewInMemory(
		"Asset.name",
		"Asset.owner",
		"Asset.size",
		"Classification.tag",
	)
}

func newFixtureContext(rootType string, filter model.FilterNode) *SearchContext {
	return NewSearchContext(rootType, filter, newFixtureRegistry(), newFixtureCatalog(), config.DefaultLimits(), diagnostics.NopSink{})
}

func newFixtureContextWithSink(rootType string, filter model.FilterNode, sink diagnostics.Sink) *SearchContext {
	return NewSearchContext(rootType, filter, newFixtureRegistry(), newFixtureCatalog(), config.DefaultLimits(), sink)
}
