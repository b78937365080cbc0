package seed

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Fixture is a data set in YAML. Records name each other through ref labels,
// which are scoped per kind.
type Fixture struct {
	Complexes      []ComplexRecord       `yaml:"complexes"`
	Steps          []StepRecord          `yaml:"steps"`
	Specifications []SpecificationRecord `yaml:"specifications"`
	Employees      []EmployeeRecord      `yaml:"employees"`
	PermitTypes    []PermitTypeRecord    `yaml:"permit_types"`
	Objects        []ObjectRecord        `yaml:"objects"`
	Trips          []TripRecord          `yaml:"trips"`
	Permits        []PermitRecord        `yaml:"permits"`
	Comments       []CommentRecord       `yaml:"comments"`
	Links          Links                 `yaml:"links"`
}

type ComplexRecord struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type StepRecord struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type SpecificationRecord struct {
	Ref         string `yaml:"ref"`
	Description string `yaml:"description"`
	Signature   *bool  `yaml:"signature"`
}

type EmployeeRecord struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type PermitTypeRecord struct {
	Ref string `yaml:"ref"`
}

type ObjectRecord struct {
	Ref            string `yaml:"ref"`
	Complex        string `yaml:"complex"`
	Step           string `yaml:"step"`
	Specification  string `yaml:"specification"`
	Name           string `yaml:"name"`
	DateStart      string `yaml:"date_start"`
	DateExpiration string `yaml:"date_expiration"`
	Cypher         string `yaml:"cypher"`
	Phase          string `yaml:"phase"`
}

type TripRecord struct {
	Ref            string `yaml:"ref"`
	DateIssue      string `yaml:"date_issue"`
	DateExpiration string `yaml:"date_expiration"`
	Description    string `yaml:"description"`
}

type PermitRecord struct {
	Ref            string `yaml:"ref"`
	PermitNum      string `yaml:"permit_num"`
	Object         string `yaml:"object"`
	Supervisor     string `yaml:"supervisor"`
	Type           string `yaml:"type"`
	DateIssue      string `yaml:"date_issue"`
	DateExpiration string `yaml:"date_expiration"`
}

type CommentRecord struct {
	Ref         string `yaml:"ref"`
	Object      string `yaml:"object"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
}

// Links lists membership pairs by label.
type Links struct {
	ObjectEmployee []ObjectEmployeeLink `yaml:"object_employee"`
	TripObject     []TripObjectLink     `yaml:"trip_object"`
	TripEmployee   []TripEmployeeLink   `yaml:"trip_employee"`
}

type ObjectEmployeeLink struct {
	Object   string `yaml:"object"`
	Employee string `yaml:"employee"`
}

type TripObjectLink struct {
	Trip   string `yaml:"trip"`
	Object string `yaml:"object"`
}

type TripEmployeeLink struct {
	Trip     string `yaml:"trip"`
	Employee string `yaml:"employee"`
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}
