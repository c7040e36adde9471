package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphcatalog/searchplanner/pkg/catalog"
	"github.com/graphcatalog/searchplanner/pkg/model"
	"github.com/graphcatalog/searchplanner/pkg/schema"
)

// fixtureFile is the on-disk shape of the --schema YAML file: a list of
// types (entities or classifications), each with its own attributes and
// an optional supertype, plus a flat list of which qualified attribute
// names the index catalog covers.
type fixtureFile struct {
	Types []fixtureType `yaml:"types"`
	Index []string      `yaml:"indexed"`
}

type fixtureType struct {
	Name       string              `yaml:"name"`
	Kind       string              `yaml:"kind"` // entity, classification
	Supertype  string              `yaml:"supertype"`
	Attributes []fixtureAttribute `yaml:"attributes"`
}

type fixtureAttribute struct {
	Name          string `yaml:"name"`
	QualifiedName string `yaml:"qualifiedName"`
	ValueType     string `yaml:"valueType"` // string, int, float, bool, date
}

func loadFixture(path string) (*schema.Registry, *catalog.InMemory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}

	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	reg := schema.NewRegistry()
	for _, t := range f.Types {
		kind := schema.KindEntity
		if t.Kind == "classification" {
			kind = schema.KindClassification
		}

		attrs := make(map[string]*schema.AttributeMeta, len(t.Attributes))
		for _, a := range t.Attributes {
			attrs[a.Name] = &schema.AttributeMeta{
				Name:          a.Name,
				QualifiedName: model.QualifiedAttribute(a.QualifiedName),
				ValueType:     parseValueType(a.ValueType),
			}
		}

		reg.Register(&schema.TypeMeta{
			Name:       t.Name,
			Kind:       kind,
			Supertype:  t.Supertype,
			Attributes: attrs,
		})
	}
	reg.LinkSubtypes()

	indexed := make([]model.QualifiedAttribute, len(f.Index))
	for i, qn := range f.Index {
		indexed[i] = model.QualifiedAttribute(qn)
	}

	return reg, catalog.NewInMemory(indexed...), nil
}

func parseValueType(s string) model.ValueType {
	switch s {
	case "string":
		return model.ValueTypeString
	case "int":
		return model.ValueTypeInt
	case "float":
		return model.ValueTypeFloat
	case "bool":
		return model.ValueTypeBool
	case "date":
		return model.ValueTypeDate
	default:
		return model.ValueTypeUnknown
	}
}
