package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// SupportedMajor is the bundle format major version this build understands.
const SupportedMajor = "v1"

// Bundle file names inside a catalog directory.
const (
	ManifestFile   = "manifest.json"
	ItemsFile      = "items.json"
	PhrasesFile    = "phrases.json"
	PrioritiesFile = "priorities.json"
	VariantsFile   = "variants.json"
)

//go:embed schema/*.json
var schemaFS embed.FS

// schemaCache caches compiled JSON schemas by bundle file name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Manifest describes a catalog bundle.
type Manifest struct {
	Version string `json:"version"`
	Name    string `json:"name,omitempty"`
}

// Load reads a catalog bundle from dir. Only items.json is required; the
// manifest, phrases, priorities and variants are optional. Each present file
// is validated against its schema before decoding. Files are read concurrently.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	var (
		manifest   *Manifest
		items      []Item
		phrases    []Phrase
		priorities map[string]float64
		variants   map[string]VariantGroup
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var m Manifest
		ok, err := readFile(ctx, dir, ManifestFile, &m)
		if ok {
			manifest = &m
		}
		return err
	})
	g.Go(func() error {
		ok, err := readFile(ctx, dir, ItemsFile, &items)
		if err == nil && !ok {
			return fmt.Errorf("catalog %s: missing required %s", dir, ItemsFile)
		}
		return err
	})
	g.Go(func() error {
		_, err := readFile(ctx, dir, PhrasesFile, &phrases)
		return err
	})
	g.Go(func() error {
		_, err := readFile(ctx, dir, PrioritiesFile, &priorities)
		return err
	})
	g.Go(func() error {
		_, err := readFile(ctx, dir, VariantsFile, &variants)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if manifest != nil {
		if err := checkVersion(manifest.Version); err != nil {
			return nil, err
		}
	}

	var pt *PriorityTable
	if priorities != nil {
		pt = NewPriorityTable(priorities)
	}
	var vi *VariantIndex
	if variants != nil {
		vi = NewVariantIndex(variants)
	}
	return New(items, phrases, pt, vi)
}

// checkVersion accepts any valid semver with the supported major version.
func checkVersion(v string) error {
	if !semver.IsValid(v) || semver.Major(v) != SupportedMajor {
		return &VersionError{Got: v, Want: SupportedMajor}
	}
	return nil
}

// readFile validates and decodes one bundle file into dst.
// Returns ok=false (and no error) when the file does not exist.
func readFile(ctx context.Context, dir, name string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}

	if err := validateFile(name, raw); err != nil {
		return true, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return true, &ValidationError{File: name, Err: err}
	}
	return true, nil
}

// validateFile validates raw JSON against the embedded schema for the file.
func validateFile(name string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{File: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(name)
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{File: name, Err: err}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	defBytes, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
