// Package cli wires the ktlens commands: review, rules, config, and
// version. Command handlers translate pipeline outcomes into
// deterministic exit codes suitable for CI gating.
package cli
