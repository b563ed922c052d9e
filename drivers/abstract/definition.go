package abstract

import (
	"github.com/datazip-inc/tap-clockify/types"
)

type Constructor func(config Config, state types.State, entry *types.CatalogEntry, client Client) (Stream, error)

// Definition is the StreamDefinition used by registries: a name, its
// dependencies and a constructor.
type Definition struct {
	Table        string
	Dependencies []string
	Constructor  Constructor
}

func NewDefinition(table string, constructor Constructor, dependencies ...string) *Definition {
	return &Definition{
		Table:        table,
		Dependencies: dependencies,
		Constructor:  constructor,
	}
}

func (d *Definition) Name() string {
	return d.Table
}

func (d *Definition) Requires() []string {
	return d.Dependencies
}

func (d *Definition) MatchesCatalog(entry *types.CatalogEntry) bool {
	return entry != nil && entry.Stream == d.Table
}

func (d *Definition) RequirementsMet(catalog *types.Catalog) bool {
	return len(MissingRequirements(d.Dependencies, catalog)) == 0
}

func (d *Definition) New(config Config, state types.State, entry *types.CatalogEntry, client Client) (Stream, error) {
	return d.Constructor(config, state, entry, client)
}

// MissingRequirements returns the dependencies that are absent or not selected in catalog
func MissingRequirements(requires []string, catalog *types.Catalog) []string {
	selected := make(map[string]bool)
	if catalog != nil {
		for _, entry := range catalog.Streams {
			if IsSelected(entry) {
				selected[entry.Stream] = true
			}
		}
	}

	missing := []string{}
	for _, dependency := range requires {
		if !selected[dependency] {
			missing = append(missing, dependency)
		}
	}

	return missing
}
