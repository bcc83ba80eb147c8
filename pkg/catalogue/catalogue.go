// Package catalogue provides the product id to display name lookup.
package catalogue

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"
)

// Error is the error class for catalogue problems.
var Error = errs.Class("catalogue")

type Product struct {
	ID   string `toml:"id" yaml:"id"`
	Name string `toml:"name" yaml:"name"`
}

// Catalogue is an ordered, read-only list of products.
type Catalogue struct {
	products []Product
	names    map[string]string
}

// New returns a catalogue of the given products, in order.
func New(products ...Product) (Catalogue, error) {
	names := make(map[string]string, len(products))
	for i, product := range products {
		if product.ID == "" {
			return Catalogue{}, Error.New("product %d: id cannot be empty", i+1)
		}
		if _, ok := names[product.ID]; ok {
			return Catalogue{}, Error.New("product %d: duplicate id %q", i+1, product.ID)
		}
		names[product.ID] = product.Name
	}
	return Catalogue{
		products: append([]Product(nil), products...),
		names:    names,
	}, nil
}

// Must is like New but panics on error.
func Must(products ...Product) Catalogue {
	c, err := New(products...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in coffee catalogue.
func Default() Catalogue {
	return Must(
		Product{ID: "1", Name: "Americano"},
		Product{ID: "2", Name: "Cappuccino"},
		Product{ID: "3", Name: "Espresso"},
		Product{ID: "4", Name: "Flat White"},
		Product{ID: "5", Name: "Latte"},
		Product{ID: "6", Name: "Macchiato"},
		Product{ID: "7", Name: "Mocha"},
	)
}

// Name returns the display name for the product id.
func (c Catalogue) Name(id string) (string, bool) {
	name, ok := c.names[id]
	return name, ok
}

// Products returns the products in catalogue order.
func (c Catalogue) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c Catalogue) Len() int {
	return len(c.products)
}

type file struct {
	Products []Product `toml:"products" yaml:"products"`
}

// Load loads a catalogue file. The format is picked from the extension:
// .toml, .yaml or .yml.
func Load(path string) (Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, Error.Wrap(err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		d := toml.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(&f); err != nil {
			return Catalogue{}, Error.New("failed to unmarshal %q: %v", path, err)
		}
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		if err := d.Decode(&f); err != nil {
			return Catalogue{}, Error.New("failed to unmarshal %q: %v", path, err)
		}
	default:
		return Catalogue{}, Error.New("unsupported catalogue format %q", ext)
	}

	return New(f.Products...)
}
