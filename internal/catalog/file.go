package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var fileSchemaJSON []byte

const fileSchemaURL = "schema://lingua-catalog.json"

var (
	compileOnce sync.Once
	fileSchema  *jsonschema.Schema
	compileErr  error
)

// File is the on-disk catalog extension format.
type File struct {
	Languages []FileLanguage `json:"languages"`
}

// FileLanguage adds or replaces one language.
type FileLanguage struct {
	Name      string                `json:"name"`
	Sentences map[Difficulty]string `json:"sentences"`
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(fileSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		fileSchema, compileErr = c.Compile(fileSchemaURL)
	})
	return fileSchema, compileErr
}

// ParseFile validates raw against the catalog file schema and decodes it.
func ParseFile(raw []byte) (*File, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog file does not match schema: %w", err)
	}

	f := &File{}
	for _, l := range doc.(map[string]any)["languages"].([]any) {
		entry := l.(map[string]any)
		fl := FileLanguage{
			Name:      entry["name"].(string),
			Sentences: make(map[Difficulty]string, len(difficulties)),
		}
		for k, v := range entry["sentences"].(map[string]any) {
			fl.Sentences[Difficulty(k)] = v.(string)
		}
		f.Languages = append(f.Languages, fl)
	}
	return f, nil
}

// Extend returns a new catalog with f's languages merged into base. A
// language already in base keeps its position and has its sentences
// replaced.
func Extend(base *Catalog, f *File) *Catalog {
	c := &Catalog{sentences: make(map[Language]map[Difficulty]string)}
	for _, lang := range base.languages {
		c.set(lang, base.sentences[lang])
	}
	for _, fl := range f.Languages {
		c.set(Language(fl.Name), fl.Sentences)
	}
	return c
}

// LoadFile reads a catalog extension from path and merges it into the
// built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	f, err := ParseFile(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c := Extend(Default(), f)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
