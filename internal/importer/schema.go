// Package importer reads and checks site import files. A file describes one
// site with its groups and a flat page list linked by refs.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a site import file. Files may be
// YAML or JSON.
type ImportSchema struct {
	Site   SiteImport    `json:"site" yaml:"site"`
	Groups []GroupImport `json:"groups,omitempty" yaml:"groups,omitempty"`
	Pages  []PageImport  `json:"pages,omitempty" yaml:"pages,omitempty"`
}

type SiteImport struct {
	Code   string  `json:"code" yaml:"code"`
	Name   string  `json:"name" yaml:"name"`
	Domain *string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// GroupImport defines a page group. Pages point at it through Ref.
type GroupImport struct {
	Ref         string  `json:"ref" yaml:"ref"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PageImport defines a page. ParentRef must name a page listed earlier in
// the same group; a nil GroupRef leaves the page ungrouped. A nil Order
// appends the page after its earlier siblings.
type PageImport struct {
	Ref       string  `json:"ref" yaml:"ref"`
	GroupRef  *string `json:"group_ref,omitempty" yaml:"group_ref,omitempty"`
	ParentRef *string `json:"parent_ref,omitempty" yaml:"parent_ref,omitempty"`
	Title     string  `json:"title" yaml:"title"`
	Slug      string  `json:"slug" yaml:"slug"`
	Content   *string `json:"content,omitempty" yaml:"content,omitempty"`
	Order     *int    `json:"order,omitempty" yaml:"order,omitempty"`
	Published *bool   `json:"published,omitempty" yaml:"published,omitempty"`
}

// LoadImportSchema reads and parses a site import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema decodes YAML or JSON. Unknown keys are rejected so a
// misspelled field does not silently drop data.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema ImportSchema
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing import file: empty document")
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
