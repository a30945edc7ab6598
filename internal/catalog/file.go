package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"xarxa/internal/geom"
)

var validate = validator.New()

// File is the on-disk YAML shape of a catalog.
type File struct {
	Categories []Category     `yaml:"categories" validate:"required,min=1,dive"`
	Nodes      []Node         `yaml:"nodes" validate:"required,min=1,dive"`
	Layout     []geom.Percent `yaml:"layout"`
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return New(file.Nodes, file.Categories, Layout(file.Layout))
}

// Validate checks field rules and reports every failing field at once.
func (f *File) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating catalog: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid catalog: %s", strings.Join(msgs, "; "))
}

// Encode writes c (with its default layout) as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	file := File{
		Categories: c.categories,
		Nodes:      c.nodes,
		Layout:     c.defaults,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}
