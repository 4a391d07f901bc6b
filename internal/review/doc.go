// Package review implements the analysis pipeline: running rule
// matchers over a corpus of source units, normalizing raw matches into
// deduplicated findings, linking related findings across files,
// classifying severity with contextual modifiers, and assembling the
// final report model. All analysis decisions live here; rendering is
// left to the output package.
package review
