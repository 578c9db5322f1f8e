// Package importer reads contracts authored outside the wizard from a flat,
// ref-based JSON file.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// ImportSchema is the top-level JSON structure for contract import. Nodes
// and indicators refer to their parent by ref rather than by nesting.
type ImportSchema struct {
	Nodes      []NodeImport      `json:"nodes"`
	Indicators []IndicatorImport `json:"indicators"`
}

// NodeImport defines a pillar, sector, outcome or output.
type NodeImport struct {
	Ref       string  `json:"ref"`
	ParentRef *string `json:"parent_ref,omitempty"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Order     int     `json:"order"`
}

// IndicatorImport defines an indicator under an output. Targets and
// achievements list up to four quarters, quarter 1 first; missing quarters
// are zero.
type IndicatorImport struct {
	Ref          string          `json:"ref"`
	OutputRef    string          `json:"output_ref"`
	Name         string          `json:"name"`
	Baseline     domain.Baseline `json:"baseline"`
	SourceOfData string          `json:"source_of_data,omitempty"`
	Targets      []float64       `json:"targets,omitempty"`
	Achievements []float64       `json:"achievements,omitempty"`
	Order        int             `json:"order"`
}

// LoadImportSchema reads and parses a contract import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
