// Package source models the Kotlin source units a review runs over: file
// content, an inferred logical role (ViewModel, Repository, test, entry
// point, ...), lazily built line views with comments and string literals
// stripped, and a role index used by cross-file matchers.
package source
