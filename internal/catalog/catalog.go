package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	CategoryFormatting Category = "formatting"
	CategoryAdherence  Category = "adherence"
	CategoryFatal      Category = "fatal"
	CategorySource     Category = "source"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFormatting, CategoryAdherence, CategoryFatal, CategorySource:
		return true
	default:
		return false
	}
}

// ErrorType is one named defect. The catalog is immutable after startup.
type ErrorType struct {
	Label      string   `yaml:"label" json:"label"`
	ShortLabel string   `yaml:"short_label" json:"short_label"`
	Deduction  int      `yaml:"deduction" json:"deduction"`
	Category   Category `yaml:"category" json:"category"`
}

type Catalog struct {
	types   []ErrorType
	byLabel map[string]ErrorType
}

//go:embed default.yaml
var defaultYAML []byte

// Load reads the catalog from path, or the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	raw := defaultYAML
	if strings.TrimSpace(path) != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = fileRaw
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var doc struct {
		ErrorTypes []ErrorType `yaml:"error_types"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.ErrorTypes) == 0 {
		return nil, fmt.Errorf("catalog has no error types")
	}
	byLabel := make(map[string]ErrorType, len(doc.ErrorTypes))
	for _, et := range doc.ErrorTypes {
		label := strings.TrimSpace(et.Label)
		if label == "" {
			return nil, fmt.Errorf("catalog entry with empty label")
		}
		if et.Deduction < 0 {
			return nil, fmt.Errorf("catalog entry %q has negative deduction", label)
		}
		if !et.Category.Valid() {
			return nil, fmt.Errorf("catalog entry %q has unknown category %q", label, et.Category)
		}
		if _, dup := byLabel[label]; dup {
			return nil, fmt.Errorf("catalog entry %q duplicated", label)
		}
		et.Label = label
		byLabel[label] = et
	}
	return &Catalog{types: doc.ErrorTypes, byLabel: byLabel}, nil
}

// Types returns the catalog in file order.
func (c *Catalog) Types() []ErrorType {
	out := make([]ErrorType, len(c.types))
	copy(out, c.types)
	return out
}

// Deduction looks a label up. Unknown labels report ok=false; callers treat
// them as zero-deduction no-ops rather than errors.
func (c *Catalog) Deduction(label string) (int, bool) {
	et, ok := c.byLabel[label]
	if !ok {
		return 0, false
	}
	return et.Deduction, true
}

func (c *Catalog) Has(label string) bool {
	_, ok := c.byLabel[label]
	return ok
}
