// Package catalog reads component catalogs from YAML or TOML files and watches them for changes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	appcatalog "github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

// Format is a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported catalog file extension %q (use .yaml, .yml or .toml)", filepath.Ext(path))
}

// FileLoader loads a catalog from one file. Malformed entries are skipped and reported, never
// fatal; only an unreadable or unparseable file fails the load.
type FileLoader struct {
	path      string
	validator *config.Validator
}

// NewFileLoader creates a loader for path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path, validator: config.NewValidator()}
}

// Path returns the catalog file path
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads and decodes the catalog file
func (l *FileLoader) Load(ctx context.Context) (*appcatalog.LoadResult, error) {
	format, err := FormatFromPath(l.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", l.path, err)
	}
	result, err := l.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", l.path, err)
	}
	result.Source = l.path
	return result, nil
}

// Decode parses catalog bytes in the given format
func (l *FileLoader) Decode(data []byte, format Format) (*appcatalog.LoadResult, error) {
	var file fileDTO
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	result := &appcatalog.LoadResult{}

	defs := make([]*component.Definition, 0, len(file.Components))
	seen := make(map[string]bool, len(file.Components))
	for i, dto := range file.Components {
		id := dto.ID
		if id == "" {
			id = fmt.Sprintf("components[%d]", i)
		}
		if seen[dto.ID] {
			result.Skipped = append(result.Skipped, appcatalog.SkippedEntry{ID: id, Reason: "duplicate component id"})
			continue
		}
		def, err := l.component(dto)
		if err != nil {
			result.Skipped = append(result.Skipped, appcatalog.SkippedEntry{ID: id, Reason: reason(err)})
			continue
		}
		seen[dto.ID] = true
		defs = append(defs, def)
	}
	components, err := component.NewCatalog(defs)
	if err != nil {
		return nil, err
	}
	result.Components = components

	classes := make([]*ship.Class, 0, len(file.Classes))
	seenClass := make(map[string]bool, len(file.Classes))
	for i, dto := range file.Classes {
		name := dto.Name
		if name == "" {
			name = fmt.Sprintf("classes[%d]", i)
		}
		if seenClass[dto.Name] {
			result.Skipped = append(result.Skipped, appcatalog.SkippedEntry{ID: name, Reason: "duplicate class name"})
			continue
		}
		if err := l.validator.Validate(dto); err != nil {
			result.Skipped = append(result.Skipped, appcatalog.SkippedEntry{ID: name, Reason: reason(err)})
			continue
		}
		class, err := dto.toClass()
		if err != nil {
			result.Skipped = append(result.Skipped, appcatalog.SkippedEntry{ID: name, Reason: err.Error()})
			continue
		}
		seenClass[dto.Name] = true
		classes = append(classes, class)
	}
	classCatalog, err := ship.NewClassCatalog(classes)
	if err != nil {
		return nil, err
	}
	result.Classes = classCatalog

	return result, nil
}

func (l *FileLoader) component(dto componentDTO) (*component.Definition, error) {
	if err := l.validator.Validate(dto); err != nil {
		return nil, err
	}
	def, err := dto.toDefinition()
	if err != nil {
		var catalogErr *shared.CatalogError
		if errors.As(err, &catalogErr) {
			return nil, errors.New(catalogErr.Reason)
		}
		return nil, err
	}
	return def, nil
}

// reason puts every failed field of an entry on one line
func reason(err error) string {
	var failure *config.ValidationFailure
	if errors.As(err, &failure) {
		return failure.Summary()
	}
	return err.Error()
}
