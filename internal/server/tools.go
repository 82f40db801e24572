package server

import "github.com/ironsheep/mandelbrot-bmp/internal/config"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// renderProperties describes the render configuration shared by the
// mandelbrot_render and mandelbrot_evaluate tools. Every field is optional.
func renderProperties() map[string]interface{} {
	return map[string]interface{}{
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Full image width in pixels",
			"default":     300,
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Full image height in pixels",
			"default":     300,
		},
		"cx": map[string]interface{}{
			"type":        "number",
			"description": "Real part of the C parameter at the image center",
			"default":     -0.5,
		},
		"cy": map[string]interface{}{
			"type":        "number",
			"description": "Imaginary part of the C parameter at the image center",
			"default":     0.0,
		},
		"precision": map[string]interface{}{
			"type":        "number",
			"description": "Plane distance covered by one pixel",
			"default":     0.01,
		},
		"max_iterations": map[string]interface{}{
			"type":        "integer",
			"description": "Iteration limit; points that reach it are interior and drawn black",
			"default":     100,
		},
		"escape_radius": map[string]interface{}{
			"type":        "number",
			"description": "Escape radius",
			"default":     2.0,
		},
		"palette": map[string]interface{}{
			"type":        "string",
			"description": "Color strategy",
			"enum":        config.PaletteNames(),
			"default":     "sine",
		},
		"color_factor": map[string]interface{}{
			"type":        "number",
			"description": "How quickly the colors change",
			"default":     0.02,
		},
		"color_phase": map[string]interface{}{
			"type":        "number",
			"description": "Palette phase",
			"default":     1.0,
		},
		"color_delta": map[string]interface{}{
			"type":        "number",
			"description": "Channel offset of the sine palette",
			"default":     1.0,
		},
		"bw": map[string]interface{}{
			"type":        "boolean",
			"description": "Write an 8-bit greyscale bitmap using the grey palette",
			"default":     false,
		},
		"linear_min": map[string]interface{}{
			"type":        "string",
			"description": "Linear palette color at count 0 (#RRGGBB)",
		},
		"linear_max": map[string]interface{}{
			"type":        "string",
			"description": "Linear palette color approaching the iteration limit (#RRGGBB)",
		},
		"salt": map[string]interface{}{
			"type":        "string",
			"description": "Hash palette salt",
		},
		"shortcut": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip iterating points inside the main cardioid and period-2 bulb",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderProps := renderProperties()
	renderProps["start_line"] = map[string]interface{}{
		"type":        "integer",
		"description": "Band index; the first rendered row is start_line*band_height",
		"default":     0,
	}
	renderProps["band_height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Rows per band index",
		"default":     200,
	}
	renderProps["n_lines"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of rows to render; 0 renders through the last row",
		"default":     0,
	}
	renderProps["out_dir"] = map[string]interface{}{
		"type":        "string",
		"description": "Output directory",
		"default":     ".",
	}
	renderProps["prefix"] = map[string]interface{}{
		"type":        "string",
		"description": "Output file prefix; files are named <prefix>_<start_row>.bmp and .txt",
		"default":     "data",
	}
	renderProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Explicit bitmap path, overriding out_dir and prefix",
	}
	renderProps["dump"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Also write the per-row iteration counts as text",
		"default":     true,
	}

	evalProps := renderProperties()
	evalProps["x"] = map[string]interface{}{
		"type":        "integer",
		"description": "Optional pixel column; with y, evaluates that pixel instead of cx/cy",
	}
	evalProps["y"] = map[string]interface{}{
		"type":        "integer",
		"description": "Optional pixel row, counted from the bottom of the image",
	}

	return []Tool{
		// Rendering
		{
			Name:        "mandelbrot_render",
			Description: "Render rows of a Mandelbrot image into an uncompressed BMP band file named after its first row, plus an optional text dump of the iteration counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProps,
			},
		},
		{
			Name:        "mandelbrot_evaluate",
			Description: "Return the escape-time iteration count and palette color of one point of the complex plane.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": evalProps,
			},
		},
		{
			Name:        "mandelbrot_stitch",
			Description: "Compose band files into one bitmap, optionally writing a PNG preview with band seams marked.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"description": "Band file paths named <prefix>_<start_row>.bmp",
						"items":       map[string]interface{}{"type": "string"},
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Full image height; 0 uses the end of the last band",
						"default":     0,
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Path of the stitched bitmap",
					},
					"bw": map[string]interface{}{
						"type":        "boolean",
						"description": "Write an 8-bit greyscale bitmap",
						"default":     false,
					},
					"preview": map[string]interface{}{
						"type":        "string",
						"description": "Optional PNG preview path",
					},
					"preview_scale": map[string]interface{}{
						"type":        "number",
						"description": "Preview scale factor",
						"default":     1.0,
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Mark band seams and start rows on the preview",
						"default":     false,
					},
				},
				"required": []string{"paths", "output"},
			},
		},

		// Band Information
		{
			Name:        "image_load",
			Description: "Load a band bitmap and return its dimensions, bit depth and row range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the band file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from a rendered image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Return a scaled copy of a rendered image as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor. Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color of a pixel in hex, RGB and HSL, its grey index, and whether it is interior (black).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, top row is 0)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_color_usage",
			Description: "Count the distinct colors of a rendered image, the most frequent ones and the interior percentage.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 10",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},

		// Analysis Helpers
		{
			Name:        "image_compare",
			Description: "Compare two images of the same size pixel by pixel, e.g. a stitched image against a full render.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path2": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
				},
				"required": []string{"path1", "path2"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.result(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
}
