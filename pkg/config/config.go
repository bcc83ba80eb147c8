package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"storj.io/sales-table/pkg/catalogue"
)

const (
	DefaultPageSize = 23
	DefaultLogDir   = "~/.salestable"
)

// DefaultQuickPageSizes are offered when none are configured.
var DefaultQuickPageSizes = []int{10, 20, 50, 100}

type MissingFieldsError = toml.StrictMissingError

type Config struct {
	Table     Table     `toml:"table"`
	Catalogue Catalogue `toml:"catalogue"`
	Log       Log       `toml:"log"`
}

type Table struct {
	// PageSize is the number of rows per page.
	PageSize int `toml:"page_size"`

	// QuickPageSizes are offered as one-click page sizes.
	QuickPageSizes []int `toml:"quick_page_sizes"`

	// Hidden lists the headers of columns that start out hidden.
	Hidden []string `toml:"hidden"`
}

// Catalogue configures where product names come from. Path and Products are
// mutually exclusive; with neither, the built-in catalogue is used.
type Catalogue struct {
	// Path is a TOML or YAML catalogue file.
	Path Path `toml:"path"`

	// Products is an inline catalogue.
	Products []catalogue.Product `toml:"products"`
}

type Log struct {
	// Dir is where the logs directory is created.
	Dir Path `toml:"dir"`
}

// LoadCatalogue returns the configured catalogue.
func (c Config) LoadCatalogue() (catalogue.Catalogue, error) {
	switch {
	case c.Catalogue.Path != "" && len(c.Catalogue.Products) > 0:
		return catalogue.Catalogue{}, errors.New("catalogue path and inline products are mutually exclusive")
	case c.Catalogue.Path != "":
		return catalogue.Load(string(c.Catalogue.Path))
	case len(c.Catalogue.Products) > 0:
		return catalogue.New(c.Catalogue.Products...)
	default:
		return catalogue.Default(), nil
	}
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Table: Table{
			PageSize:       DefaultPageSize,
			QuickPageSizes: append([]int(nil), DefaultQuickPageSizes...),
		},
		Log: Log{
			Dir: ToPath(DefaultLogDir),
		},
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	config := Default()

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Table.PageSize < 1 {
		return Config{}, fmt.Errorf("table.page_size must be positive; got %d", config.Table.PageSize)
	}
	for _, size := range config.Table.QuickPageSizes {
		if size < 1 {
			return Config{}, fmt.Errorf("table.quick_page_sizes must be positive; got %d", size)
		}
	}

	return config, nil
}

func DumpUnknownFields(err error) string {
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return sme.String()
	}
	return ""
}
