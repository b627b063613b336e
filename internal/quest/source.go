package quest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidCatalog indicates a catalog document that does not match the
// expected shape.
var ErrInvalidCatalog = errors.New("invalid catalog")

const catalogSchemaURL = "schema://quest-catalog.json"

// catalogSchema describes a catalog document: an array of {id, text}.
const catalogSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text"],
		"additionalProperties": false,
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"text": {"type": "string"}
		}
	}
}`

var compiledCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(catalogSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(catalogSchemaURL)
})

// LoadCatalog reads a JSON catalog document from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(raw)
}

// LoadCatalogFile reads a JSON catalog document from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func parseCatalog(raw []byte) (*Catalog, error) {
	// The jsonschema library validates parsed JSON values, not raw bytes.
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(entries)
}
