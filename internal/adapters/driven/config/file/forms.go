package file

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure FormCatalog implements the interface.
var _ driven.FormSchemaSource = (*FormCatalog)(nil)

//go:embed forms/*.yaml
var defaultForms embed.FS

// formFile is the YAML layout of a form definition.
type formFile struct {
	Code   string      `yaml:"code"`
	Title  string      `yaml:"title"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Key      string            `yaml:"key"`
	Type     string            `yaml:"type"`
	Required bool              `yaml:"required"`
	Labels   map[string]string `yaml:"labels"`
	Lookup   []string          `yaml:"lookup"`
}

// FormCatalog holds the form schemas known to the application.
// It is built once and read-only afterwards.
type FormCatalog struct {
	schemas map[string]*domain.FormSchema
}

// LoadFormCatalog reads the embedded form definitions, then every *.yaml
// file in dir. A file in dir replaces an embedded form with the same code.
// An empty dir loads the embedded forms only; a missing dir is not an error.
func LoadFormCatalog(dir string) (*FormCatalog, error) {
	c := &FormCatalog{schemas: make(map[string]*domain.FormSchema)}

	if err := c.loadFS(defaultForms, "forms"); err != nil {
		return nil, fmt.Errorf("load embedded forms: %w", err)
	}

	if dir == "" {
		return c, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return c, nil
	}
	if err := c.loadFS(os.DirFS(dir), "."); err != nil {
		return nil, fmt.Errorf("load forms from %s: %w", dir, err)
	}
	return c, nil
}

// Schema returns the schema for a form code.
func (c *FormCatalog) Schema(code string) (*domain.FormSchema, bool) {
	s, ok := c.schemas[domain.NormaliseFormCode(code)]
	return s, ok
}

// Codes returns all known form codes, sorted.
func (c *FormCatalog) Codes() []string {
	codes := make([]string, 0, len(c.schemas))
	for code := range c.schemas {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *FormCatalog) loadFS(fsys fs.FS, root string) error {
	matches, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(root, "*.yaml")))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		schema, err := ParseFormSchema(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		c.schemas[schema.Code] = schema
	}
	return nil
}

// ParseFormSchema decodes and validates a YAML form definition.
func ParseFormSchema(data []byte) (*domain.FormSchema, error) {
	var ff formFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	schema := &domain.FormSchema{
		Code:   domain.NormaliseFormCode(ff.Code),
		Title:  ff.Title,
		Fields: make([]domain.FieldDef, 0, len(ff.Fields)),
	}
	if schema.Code == "" {
		return nil, fmt.Errorf("%w: form code is required", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(schema.Code, "!#") {
		return nil, fmt.Errorf("%w: form code %q contains a separator", domain.ErrInvalidInput, schema.Code)
	}

	seen := make(map[string]bool, len(ff.Fields))
	for i, f := range ff.Fields {
		key := strings.TrimSpace(f.Key)
		if key == "" {
			return nil, fmt.Errorf("%w: field %d has no key", domain.ErrInvalidInput, i)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate field %q", domain.ErrInvalidInput, key)
		}
		seen[key] = true

		ft := domain.FieldType(strings.ToLower(strings.TrimSpace(f.Type)))
		if ft == "" {
			ft = domain.FieldString
		}
		if !ft.IsValid() {
			return nil, fmt.Errorf("%w: field %q has unknown type %q", domain.ErrInvalidInput, key, f.Type)
		}
		if ft == domain.FieldLookup && len(f.Lookup) == 0 {
			return nil, fmt.Errorf("%w: lookup field %q has no values", domain.ErrInvalidInput, key)
		}

		schema.Fields = append(schema.Fields, domain.FieldDef{
			Key:      key,
			Type:     ft,
			Required: f.Required,
			Labels:   f.Labels,
			Lookup:   f.Lookup,
		})
	}
	return schema, nil
}
