// Package rules holds the immutable detection rule catalog: severity and
// category taxonomy, the Rule record, and the built-in lexical matchers
// for each anti-pattern category. Rules are data; adding a category or a
// rule means appending a catalog entry, never touching the engine.
package rules
