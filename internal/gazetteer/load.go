package gazetteer

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ligacoach/ligacoach/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed clubs.yaml
var embeddedTable []byte

// Table is the on-disk shape of the gazetteer
type Table struct {
	Season string               `yaml:"season,omitempty"`
	Clubs  []model.ClubIdentity `yaml:"clubs"`
}

// Load builds the Store from the embedded default table
func Load() (*Store, error) {
	return loadBytes(embeddedTable)
}

// LoadFile builds the Store from a YAML table on disk
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer table: %w", err)
	}
	return loadBytes(data)
}

func loadBytes(data []byte) (*Store, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse gazetteer table: %w", err)
	}
	if len(table.Clubs) == 0 {
		return nil, fmt.Errorf("gazetteer table is empty")
	}
	return NewStore(table.Clubs)
}

// WriteTable renders a table as YAML to the given path
func WriteTable(path string, table Table) error {
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal gazetteer table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write gazetteer table: %w", err)
	}
	return nil
}
