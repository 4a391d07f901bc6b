// Package output renders review reports in text, markdown, and JSON.
// Writers are pure functions of the report snapshot: all severity,
// grouping, and ordering decisions are made by the review package before
// a report reaches a writer.
package output
