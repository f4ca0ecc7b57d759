package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/codediagram/pkg/structure"
)

// document is the on-disk JSON shape of a tree.
type document struct {
	Module   string                 `json:"module"`
	Elements int                    `json:"elements"`
	Counts   map[structure.Kind]int `json:"counts"`
	Tree     *structure.Node        `json:"tree"`
}

// WriteJSON encodes a tree as JSON and writes it to w.
// This format can be re-imported with [ReadJSON].
func WriteJSON(root *structure.Node, w io.Writer) error {
	counts := root.Counts()
	delete(counts, structure.KindModule)

	out := document{
		Module:   root.Name,
		Elements: root.Elements(),
		Counts:   counts,
		Tree:     root,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
// The file is replaced atomically.
func ExportJSON(root *structure.Node, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0644)
}
