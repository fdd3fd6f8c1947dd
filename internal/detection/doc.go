// Package detection runs the Hough stages end to end and shapes their
// output for callers.
//
// A Pipeline is built once from a config.Config and then applied to edge
// images:
//
//  1. Accumulate: vote into the (distance, angle) accumulator and normalize
//     it to 0..255, with summary statistics of the raw votes
//  2. Peaks: threshold the normalized grid and suppress non-maxima
//  3. DetectLines: project each peak to a segment clipped to the image
//
// Each stage builds on the previous one, so Peaks also reports accumulator
// statistics and DetectLines reports both.
//
// # Coordinate System
//
// Line endpoints use the image convention: origin at the top-left corner, X
// increasing rightward and Y increasing downward. R and PhiRadians describe
// the same line relative to the image center.
//
// # Logging
//
// Stage durations, peak counts and dropped votes are logged at debug level.
package detection
