package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// houghProperties returns the schema of the arguments shared by every hough_*
// tool, merged with extra.
func houghProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty,
		"angle_bins": map[string]interface{}{
			"type":        "integer",
			"description": "Number of angle bins covering [0, pi). Default 360",
		},
		"distance_bins": map[string]interface{}{
			"type":        "integer",
			"description": "Number of distance bins. Default 500, raised to the image's minimum when omitted",
		},
		"edge_level": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance (1-255) at or above which a pixel counts as an edge. Default 1",
		},
		"detect_edges": map[string]interface{}{
			"type":        "boolean",
			"description": "Run a Sobel filter first. Use for photographs rather than edge maps. Default false",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before the Sobel filter when detect_edges is set. Default 0",
		},
		"range_policy": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"strict", "discard"},
			"description": "strict rejects too few distance bins, discard drops out-of-range votes. Default strict",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var peakProperties = map[string]interface{}{
	"kernel_size": map[string]interface{}{
		"type":        "integer",
		"description": "Side length of the non-maximum suppression window. Default 21",
	},
	"threshold": map[string]interface{}{
		"type":        "number",
		"description": "Fraction (0-1) of full intensity a cell must exceed to be a peak. Default 0.6",
	},
}

var scaleProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Integer upscaling factor for the returned preview image. Default 1",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, edge pixel count and the minimum distance bin count it needs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Hough stages
		{
			Name:        "hough_edges",
			Description: "Convert an image to the binary edge image that feeds the Hough transform and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": houghProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_accumulator",
			Description: "Build the Hough accumulator for an image. Returns vote statistics and the normalized accumulator as a grayscale PNG (angle across, distance down).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": houghProperties(map[string]interface{}{"scale": scaleProperty}),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_peaks",
			Description: "Find local maxima in the normalized accumulator. Returns the peak list and the suppressed accumulator as a grayscale PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": houghProperties(map[string]interface{}{
					"kernel_size": peakProperties["kernel_size"],
					"threshold":   peakProperties["threshold"],
					"scale":       scaleProperty,
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "hough_lines",
			Description: "Detect straight lines. Returns each line's endpoints clipped to the image, its normal form (r, phi), and an overlay of the lines and their normals drawn on the source image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": houghProperties(map[string]interface{}{
					"kernel_size": peakProperties["kernel_size"],
					"threshold":   peakProperties["threshold"],
					"max_lines": map[string]interface{}{
						"type":        "integer",
						"description": "Keep only the strongest N lines. Default 0 (all)",
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the drawn lines. Default #FF0000",
					},
					"normal_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the normals drawn from the image center. Default #00FF00",
					},
					"line_width": map[string]interface{}{
						"type":        "number",
						"description": "Stroke width in pixels. Default 1",
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the overlay image in the result. Default true",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
