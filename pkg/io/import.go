package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// ReadJSON decodes a tree document written by [WriteJSON].
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, the
// tree is missing, or the tree violates a structural invariant: the root
// must be the only module node, every child's depth must be its parent's
// plus one, and methods may only appear directly below classes.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*structure.Node, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode tree")
	}
	if doc.Tree == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "document has no tree")
	}
	if err := validate(doc.Tree); err != nil {
		return nil, err
	}
	return doc.Tree, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
func ImportJSON(path string) (*structure.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func validate(root *structure.Node) error {
	if root.Kind != structure.KindModule {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "root is a %s, want module", root.Kind)
	}
	if root.Depth != 0 {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "root depth is %d, want 0", root.Depth)
	}

	var err error
	root.Walk(func(n *structure.Node) bool {
		for _, c := range n.Children {
			switch {
			case c == nil:
				err = apperrors.New(apperrors.ErrCodeInvalidFormat, "null child below %q", n.Name)
			case c.Kind == structure.KindModule:
				err = apperrors.New(apperrors.ErrCodeInvalidFormat, "nested module %q", c.Name)
			case c.Depth != n.Depth+1:
				err = apperrors.New(apperrors.ErrCodeInvalidFormat,
					"%q has depth %d below %q at depth %d", c.Name, c.Depth, n.Name, n.Depth)
			case c.Kind == structure.KindMethod && n.Kind != structure.KindClass:
				err = apperrors.New(apperrors.ErrCodeInvalidFormat, "method %q below %s %q", c.Name, n.Kind, n.Name)
			}
			if err != nil {
				return false
			}
		}
		return err == nil
	})
	return err
}
