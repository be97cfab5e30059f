package catalog

// Loader builds a Catalog from some backing store.
// This interface allows swapping implementations (YAML files, SQLite)
// and makes testing with fixture catalogs straightforward.
type Loader interface {
	Load() (*Catalog, error)
}

// StaticLoader wraps an already-built catalog. Useful in tests and for
// embedding fixture data.
type StaticLoader struct {
	Catalog *Catalog
}

// Load returns the wrapped catalog.
func (l StaticLoader) Load() (*Catalog, error) {
	return l.Catalog, nil
}
