package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nao1215/mseo/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default site file name.
const DefaultConfigFile = ".mseo.yaml"

// xdgConfigFile is the file name looked up in the XDG config directory.
const xdgConfigFile = "config.yaml"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// LoadFile reads, decodes and validates a site file.
// Unknown keys are rejected. If the file does not exist, it returns
// ErrConfigNotFound.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Relative markdown sources are resolved against the site file.
	base := filepath.Dir(path)
	for i := range f.Pages {
		md := f.Pages[i].Markdown
		if md != "" && !filepath.IsAbs(md) {
			f.Pages[i].Markdown = filepath.Join(base, md)
		}
	}

	return f, nil
}

// Parse decodes and validates site file content.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfigFile, err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.Output.ApplyDefaults()

	return &f, nil
}

// Validate checks struct constraints and custom schema shapes.
// It returns the first problem found, wrapped in ErrInvalidConfigFile.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on '%s'", ErrInvalidConfigFile, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfigFile, err)
	}

	for i := range f.Schemas.Custom {
		if node := &f.Schemas.Custom[i]; node.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: schemas.custom[%d] must be a mapping", ErrInvalidConfigFile, i)
		}
	}

	return nil
}

// CustomSchemas converts the custom records to model.Schema values,
// preserving key order at every nesting level.
func (f *File) CustomSchemas() ([]*model.Schema, error) {
	out := make([]*model.Schema, 0, len(f.Schemas.Custom))
	for i := range f.Schemas.Custom {
		v, err := nodeValue(&f.Schemas.Custom[i])
		if err != nil {
			return nil, fmt.Errorf("schemas.custom[%d]: %w", i, err)
		}
		s, ok := v.(*model.Schema)
		if !ok {
			return nil, fmt.Errorf("%w: schemas.custom[%d] must be a mapping", ErrInvalidConfigFile, i)
		}
		out = append(out, s)
	}
	return out, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		s := &model.Schema{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			s.Set(n.Content[i].Value, v)
		}
		return s, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// FindConfigFile searches for the site file in the following order:
// 1. If configPath is specified, use it directly
// 2. .mseo.yaml in the current directory
// 3. config.yaml in the XDG config directory
// 4. .mseo.yaml in the user's home directory
//
// Returns the path to the site file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
