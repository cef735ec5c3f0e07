// Package layout computes tab-stop geometry and tab-aware run positions
// for paragraph text.
//
// All tab-stop positions are integers in twips (1/1440 inch). Run widths
// and line widths are in whatever linear unit the caller's measurement
// callback uses; the package only requires that they are consistent within
// one call.
//
// The package consists of two layers:
//
//   - [Compute]: resolves explicit tab stops, a default interval, and
//     paragraph indentation into a sorted, deduplicated stop list.
//   - [LayoutWithTabs] and [TabWidth]: position a run sequence against a
//     resolved stop list, handling decimal, center, end, and bar alignment.
//
// Layout never fails: malformed or exhausted input degrades to documented
// fallbacks (the default tab grid, an unchanged position) because partial
// geometry is preferable to blocking text layout.
package layout
