// Package diag defines the diagnostic model shared by the parse and
// transform phases.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (VJX1xxx parse, VJX2xxx directives, VJX3xxx type
// inference, VJX4xxx I/O and configuration), a short Message, the Primary
// span and optional Notes and Fixes.
//
// Phases never abort on user errors. They emit through a Reporter, usually a
// BagReporter collecting into a Bag, and carry on with a substitute value.
// Rendering lives in internal/diagfmt.
package diag
