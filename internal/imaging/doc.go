// Package imaging converts between ordinary pictures and the raster types of
// the hough package.
//
// It covers everything around the transform that touches pixels: loading and
// caching source files, turning pictures into edge images, rendering
// accumulator grids as grayscale pictures, drawing detected lines over the
// source, and encoding results as PNG.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Accumulator grids are
// rendered with the angle index on the X axis and the distance index on the
// Y axis.
//
// # Edge Images
//
// ToEdgeImage binarizes a picture that already is an edge map. DetectEdges
// runs a Sobel gradient filter first and is the entry point for photographs.
// Both mark edge pixels with 255.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their inputs.
package imaging
