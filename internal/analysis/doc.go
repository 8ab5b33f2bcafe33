// Package analysis extracts scalar signals from stored cloth trajectories and
// characterises them.
//
//   - [Centroid]: mean particle position per frame along one axis
//   - [Spectrum]: one-sided amplitude spectrum of a uniformly sampled signal
//   - [Dominant]: strongest non-DC frequency, e.g. the sway of a pinned curtain
//   - [SettleTime]: first time after which a signal stays within a band
package analysis
