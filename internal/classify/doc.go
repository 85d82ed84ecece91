// Package classify turns captured UI trees into classified screen results.
//
// The input is scraped third-party UI: versionless, adversarial, and free
// to change shape between app builds. Two matching styles coexist. Screens
// that carry data are matched structurally against anchors (identifier
// suffixes and discriminating phrases) with best-effort field extraction;
// static screens fall back to declarative text signatures. The registry
// orders all matchers by priority and returns exactly one result per tree,
// degrading to the unknown screen rather than guessing.
package classify
