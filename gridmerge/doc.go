// Package gridmerge turns overlapping, absolutely positioned text frames of
// one page into a single table with row and column spans.
//
// # Algorithm
//
// The [Merger] works in five steps:
//
//  1. Every frame edge (clamped to zero) becomes a grid line; the x and y
//     edges form two sorted, de-duplicated line sets.
//  2. Frames claim the grid cells their bounds cover, highest z-order
//     first. A cell already claimed stays with its first owner.
//  3. Each frame's extent is the largest-area rectangle inside its own
//     claimed cells. Ties go to the topmost, then leftmost, rectangle.
//  4. One table cell is emitted per frame at the top-left of its extent,
//     spanning the extent's rows and columns.
//  5. Every grid cell not covered by a frame extent becomes an empty cell;
//     adjacent empty cells in the same row are merged.
//
// # Ownership policy
//
// When a frame's claimed region is not rectangular (an L-shape left after
// a higher frame took a corner), using its bounding rectangle would cover
// cells another frame owns. The largest inner rectangle never does; the
// claimed cells outside it are emitted as empty cells instead.
//
// Frames with a non-positive width or height are excluded. A frame whose
// every cell was claimed by higher frames is reported in [Result.Hidden].
package gridmerge
