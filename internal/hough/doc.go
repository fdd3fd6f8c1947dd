// Package hough implements straight-line detection with the Hough transform.
//
// The package is a pure, in-memory pipeline over fixed-size grids. It knows
// nothing about image files, pixel encodings or rendering; callers convert
// their images into an EdgeImage and render the returned grids and segments
// themselves (see package imaging).
//
// # Pipeline
//
//  1. Build: every edge pixel votes into an accumulator indexed by
//     (distance, angle). Angle bin i maps to phi = π·i/angleBins, distance bin
//     j maps to r = j - distanceBins/2, measured from the image center.
//  2. Normalize: vote counts are rescaled to 0-255 so that thresholds are
//     independent of image size.
//  3. ExtractPeaks: cells at or below the peak threshold are cleared, then a
//     square window non-maximum suppression keeps cells with no strictly
//     greater neighbor. Equal neighbors never suppress each other.
//  4. Project: each peak is turned back into a line crossing the image, plus
//     the normal vector from the image center to the line.
//
// # Dimensions
//
// The accumulator records the angle/distance bin counts and the image size
// it was built from. Every later stage reads them from the grid it is given,
// so projection always uses the same offsets as voting. Projecting against a
// different image size is rejected with ErrDimensionMismatch.
//
// # Out-of-range votes
//
// With RangeStrict (the default) Build refuses to start unless the distance
// axis covers the whole image (see MinDistanceBins), so no vote can land
// outside the grid. RangeDiscard accepts any distance bin count and drops
// the votes that fall outside; the number dropped is reported in
// Accumulator.Dropped.
//
// # Concurrency
//
// Build splits the angle axis into contiguous bands voted by separate
// goroutines. A band owns its angle columns exclusively, so the result does
// not depend on scheduling. All other stages are sequential and allocate
// fresh output; inputs are never mutated.
package hough
