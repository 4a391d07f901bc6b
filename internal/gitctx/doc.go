// Package gitctx gathers the review corpus at the CLI boundary: Kotlin
// files changed since HEAD when no target is given, or a full tree walk
// for an explicit target path. It collects paths and raw bytes only;
// role inference and scanning belong to the source package.
package gitctx
