package registry

import (
	"bytes"
	"embed"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"catalog-studio/models"
)

//go:embed templates.yaml
var builtinFS embed.FS

// file is the on-disk layout of a template set
type file struct {
	Templates []models.TemplateDefinition `yaml:"templates"`
}

// Decode reads a YAML template set. Every definition needs a unique,
// non-empty id; the remaining fields are checked by the auditor, not here.
func Decode(r io.Reader) ([]models.TemplateDefinition, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode templates")
	}

	seen := make(map[string]struct{}, len(f.Templates))
	for i := range f.Templates {
		def := &f.Templates[i]
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return nil, errors.Errorf("template #%d: missing id", i+1)
		}
		if _, dup := seen[def.ID]; dup {
			return nil, errors.Errorf("template %q: duplicate id", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	return f.Templates, nil
}

// LoadFile decodes a YAML template set from path
func LoadFile(path string) ([]models.TemplateDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read templates file")
	}
	defs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return defs, nil
}

// Builtin returns a registry with the embedded template set
func Builtin() (*Registry, error) {
	data, err := builtinFS.ReadFile("templates.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "read builtin templates")
	}
	defs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "builtin templates")
	}
	return New(defs...), nil
}

// MustBuiltin is like Builtin but panics on error
func MustBuiltin() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}
