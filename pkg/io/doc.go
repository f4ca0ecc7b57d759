// Package io provides JSON import and export for structural trees, plus the
// atomic file writer used for every artifact the tool produces.
//
// # JSON Format
//
// A tree is written as a document holding the module name, per-kind counts,
// and the nested tree itself:
//
//	{
//	  "module": "app.py",
//	  "elements": 3,
//	  "counts": {"class": 1, "method": 1, "function": 1},
//	  "tree": {
//	    "kind": "module",
//	    "name": "app.py",
//	    "depth": 0,
//	    "children": [
//	      {"kind": "class", "name": "Server", "line": 3, "depth": 1, "children": [
//	        {"kind": "method", "name": "start", "line": 4, "depth": 2}
//	      ]},
//	      {"kind": "function", "name": "main", "line": 9, "depth": 1}
//	    ]
//	  }
//	}
//
// Counts exclude the module root. Kinds use the lower-case names of
// [structure.Kind].
//
// # Round-trips
//
// [ReadJSON] accepts the same document and validates that the tree still
// satisfies the structural invariants: a single module root, depths that
// increase by one per level, methods only directly below classes. A tree
// exported once can be rendered again in any style without the source file.
//
// # Atomic writes
//
// [WriteFileAtomic] writes to a temporary file in the destination directory
// and renames it into place, so readers never observe a partial file and a
// failed run leaves any previous file untouched.
package io
