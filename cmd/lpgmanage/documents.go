package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is one raw entity read from a file, as an editor would submit it.
type document struct {
	file  string
	index int
	raw   map[string]any
}

func (d document) String() string {
	return fmt.Sprintf("%s#%d", d.file, d.index)
}

// readDocuments reads every document of a YAML stream. JSON files parse too.
func readDocuments(path string) ([]document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeDocuments(path, f)
}

func decodeDocuments(name string, r io.Reader) ([]document, error) {
	dec := yaml.NewDecoder(r)
	var docs []document
	for i := 0; ; i++ {
		var raw map[string]any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", name, i, err)
		}
		if raw == nil {
			continue
		}
		docs = append(docs, document{file: name, index: i, raw: raw})
	}
}

func readAll(paths []string) ([]document, error) {
	var all []document
	for _, p := range paths {
		docs, err := readDocuments(p)
		if err != nil {
			return nil, err
		}
		all = append(all, docs...)
	}
	return all, nil
}
