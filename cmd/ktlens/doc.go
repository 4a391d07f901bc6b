// Ktlens is a CLI for static review of Kotlin/Android code.
//
// It scans Kotlin sources for architecture, concurrency, lifecycle,
// Compose, testing, and security anti-patterns, merges and cross-links
// the findings, and emits a structured report with a summary verdict and
// deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	ktlens review              # review .kt files changed since HEAD
//	ktlens review app/src      # review a whole source tree
//	ktlens rules               # list the detection rule catalog
//	ktlens config init         # write a default .ktlens.yml
package main
