// Package pkg provides the core libraries of codediagram.
//
// # Overview
//
// codediagram turns the structural skeleton of a Python source file into a
// diagram. The pkg directory is organized by stage:
//
//  1. [structure] - Extraction of the ordered structural tree
//  2. [render] - The Renderer capability, style selection, and the four
//     diagram styles plus Graphviz export
//  3. [pipeline] - Orchestration (select → extract → render), caching, export
//  4. Support: [cache], [io], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow through codediagram:
//
//	source text
//	     ↓
//	[structure] package (logical lines + indentation scope stack)
//	     ↓
//	structural tree (module → classes/functions → members → control flow)
//	     ↓
//	[render] subpackage for the selected style
//	     ↓
//	markdown document / JSON / DOT / SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/codediagram/pkg/render/line"
//	    "github.com/matzehuels/codediagram/pkg/structure"
//	)
//
//	root, err := structure.Extract(src, structure.Options{ModuleName: "app.py"})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(line.New().Render(root))
//
// [structure]: github.com/matzehuels/codediagram/pkg/structure
// [render]: github.com/matzehuels/codediagram/pkg/render
// [pipeline]: github.com/matzehuels/codediagram/pkg/pipeline
// [cache]: github.com/matzehuels/codediagram/pkg/cache
// [io]: github.com/matzehuels/codediagram/pkg/io
// [errors]: github.com/matzehuels/codediagram/pkg/errors
// [observability]: github.com/matzehuels/codediagram/pkg/observability
// [buildinfo]: github.com/matzehuels/codediagram/pkg/buildinfo
package pkg
