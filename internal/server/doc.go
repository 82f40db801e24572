// Package server implements the MCP (Model Context Protocol) server for
// rendering and inspecting Mandelbrot band bitmaps.
//
// This package provides a JSON-RPC 2.0 server that exposes the renderer and
// the band inspection helpers through the MCP protocol, so that a client can
// render bands, stitch them and check the result without a shell.
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
// Rendering:
//   - mandelbrot_render: Render a row range into <prefix>_<start_row>.bmp and .txt
//   - mandelbrot_evaluate: Iteration count and color of one point or pixel
//   - mandelbrot_stitch: Compose band files, optionally with a PNG preview
//
// Band Information:
//   - image_load: Dimensions, bit depth and row range of a band file
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_preview: Scaled copy as PNG
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_color_usage: Color histogram and interior percentage
//
// Analysis Helpers:
//   - image_compare: Pixel comparison of two images of equal size
//
// The render tools take the same option names as the mandelbrot command's
// long flags (width, cx, max_iterations, start_line, ...) and fall back to the
// same defaults.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. Tools that
// write a file evict its path first, so a later read sees the new content.
// initialize empties the cache.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32700 for a line that is not
//     JSON, or the standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
