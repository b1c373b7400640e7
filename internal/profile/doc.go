// Package profile implements the scan profile store and resolution engine.
//
// Profiles are named configuration fragments arranged in a strict tree and
// addressed by dotted paths such as "bill.dentist". Resolution walks the
// ancestor chain root to leaf and folds each fragment's explicitly set
// fields onto an accumulator: scalar fields use replace semantics (the
// deepest fragment wins), keywords accumulate ancestor-first. Command-line
// overrides are applied on top and outrank every profile level.
//
// Key responsibilities:
//   - Store: one-time TOML load of the profile tree; a missing file yields
//     an empty store so the tool runs without any profiles configured.
//   - Resolution: the partially merged result of a dotted-path walk.
//   - Overrides plus Apply: final precedence layer and required-field
//     validation, producing an immutable Resolved value.
//
// Resolution is pure and deterministic; nothing here touches external
// tools or mutates the store after load.
package profile
