// Package server implements the MCP (Model Context Protocol) server for Hough
// line detection.
//
// This package provides a JSON-RPC 2.0 server that exposes every stage of the
// Hough pipeline as a tool, so that a client can inspect edge images,
// accumulators and peaks as well as the final lines.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Hough Stages:
//   - hough_edges: Edge image that feeds the transform
//   - hough_accumulator: Normalized accumulator and vote statistics
//   - hough_peaks: Peaks after thresholding and non-maximum suppression
//   - hough_lines: Detected lines with an overlay of lines and normals
//
// Every hough_* tool accepts the pipeline parameters as optional arguments.
// Omitted arguments fall back to the configuration the server was created
// with.
//
// # Image Caching
//
// Decoded images and their edge images are cached by path for the lifetime
// of the server process, so successive stages on one file skip disk I/O and
// edge conversion.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params), -32601 (unknown method) or -32700 (unparseable line)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    return err
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    return err
//	}
package server
