// Package structure extracts the structural skeleton of an
// indentation-structured source file (Python) into an ordered tree.
//
// # Overview
//
// The tree is the single contract shared by every diagram renderer. It holds
// one [KindModule] root whose descendants are classes, functions, methods and,
// when requested, control-flow headers, in the order they appear in the
// source:
//
//	root, err := structure.Extract(src, structure.Options{
//	    ModuleName:         "app.py",
//	    IncludeControlFlow: true,
//	})
//
// # Extraction
//
// [Extract] is deliberately not a parser. It splits the text into logical
// lines (joining bracketed and backslash continuations, swallowing
// triple-quoted strings, dropping blank and comment lines) and reconstructs
// nesting from indentation with an explicit stack of open scopes. A line whose
// indentation is at or below the indentation of the innermost open scope
// closes that scope before it is classified.
//
// Indentation levels are compared as whitespace prefix strings, so a file that
// mixes tabs and spaces inconsistently fails with a STRUCTURAL_PARSE error
// carrying a [*ParseError] rather than producing a guessed tree.
//
// # Control-flow labels
//
// Control-flow nodes are named after their condensed header: the keyword, the
// condition with whitespace collapsed (truncated to [Options.LabelWidth]
// runes with a "..." marker), and a trailing colon, e.g. "if x > 0:" or
// "else:".
//
// # Immutability
//
// Trees are built once by [Extract] and must not be modified afterwards.
// Renderers receive the same tree and may traverse it freely.
package structure
