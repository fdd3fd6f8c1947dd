package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/hough-lines/internal/config"
	"github.com/ironsheep/hough-lines/internal/detection"
	"github.com/ironsheep/hough-lines/internal/hough"
	"github.com/ironsheep/hough-lines/internal/imaging"
	"github.com/ironsheep/hough-lines/internal/logger"
)

// maxPreviewScale bounds the upscaling of accumulator previews.
const maxPreviewScale = 16

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "hough_lines").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	out, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logger.WithError(err).WithField("tool", params.Name).Info("tool execution failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(out),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each hough_* handler:
//  1. Unmarshals arguments from JSON
//  2. Resolves the pipeline configuration, falling back to the server
//     defaults for omitted arguments
//  3. Loads the edge image from cache
//  4. Runs the pipeline up to the requested stage
//  5. Returns the result, with a preview image where the stage has one
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Hough stages
	case "hough_edges":
		return s.handleHoughEdges(args)
	case "hough_accumulator":
		return s.handleHoughAccumulator(args)
	case "hough_peaks":
		return s.handleHoughPeaks(args)
	case "hough_lines":
		return s.handleHoughLines(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Hough Stage Handlers ===

// houghArgs holds the arguments of every hough_* tool. Zero values mean
// "use the server default".
type houghArgs struct {
	Path         string   `json:"path"`
	AngleBins    int      `json:"angle_bins"`
	DistanceBins int      `json:"distance_bins"`
	EdgeLevel    int      `json:"edge_level"`
	DetectEdges  bool     `json:"detect_edges"`
	BlurRadius   float64  `json:"blur_radius"`
	RangePolicy  string   `json:"range_policy"`
	KernelSize   int      `json:"kernel_size"`
	Threshold    *float64 `json:"threshold"`
	Scale        int      `json:"scale"`

	MaxLines    int     `json:"max_lines"`
	LineColor   string  `json:"line_color"`
	NormalColor string  `json:"normal_color"`
	LineWidth   float64 `json:"line_width"`
	Overlay     *bool   `json:"overlay"`
}

// configFor overlays the call arguments on the server defaults. When the
// caller leaves distance_bins out, the default is raised to the minimum the
// image needs so that strict runs do not fail on large images.
func (s *Server) configFor(a houghArgs, width, height int) config.Config {
	cfg := s.base
	if a.AngleBins != 0 {
		cfg.AngleBins = a.AngleBins
	}
	if a.DistanceBins != 0 {
		cfg.DistanceBins = a.DistanceBins
	} else if need := hough.MinDistanceBins(width, height); cfg.DistanceBins < need {
		cfg.DistanceBins = need
	}
	if a.EdgeLevel != 0 {
		cfg.EdgeLevel = a.EdgeLevel
	}
	if a.RangePolicy != "" {
		cfg.RangePolicy = a.RangePolicy
	}
	if a.KernelSize != 0 {
		cfg.KernelSize = a.KernelSize
	}
	if a.Threshold != nil {
		cfg.PeakThreshold = *a.Threshold
	}
	if a.MaxLines != 0 {
		cfg.MaxLines = a.MaxLines
	}
	if a.LineColor != "" {
		cfg.LineColor = a.LineColor
	}
	if a.NormalColor != "" {
		cfg.NormalColor = a.NormalColor
	}
	if a.LineWidth != 0 {
		cfg.LineWidth = a.LineWidth
	}
	return cfg
}

// houghRun is a resolved hough_* call: its arguments, a pipeline built from
// them and the edge image to run it on.
type houghRun struct {
	args     houghArgs
	pipeline *detection.Pipeline
	edges    *hough.EdgeImage
}

func (s *Server) prepareHough(args json.RawMessage) (*houghRun, error) {
	var a houghArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale < 0 || a.Scale > maxPreviewScale {
		return nil, fmt.Errorf("scale must be between 0 and %d, got %d", maxPreviewScale, a.Scale)
	}

	dims, err := imaging.GetDimensions(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	p, err := detection.NewPipeline(s.configFor(a, dims.Width, dims.Height))
	if err != nil {
		return nil, err
	}

	level := p.Config().EdgeLevel
	var edges *hough.EdgeImage
	if a.DetectEdges {
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		edges, err = imaging.DetectEdges(img, level, a.BlurRadius)
		if err != nil {
			return nil, err
		}
	} else {
		edges, err = s.cache.LoadEdges(a.Path, level)
		if err != nil {
			return nil, err
		}
	}

	return &houghRun{args: a, pipeline: p, edges: edges}, nil
}

func encodePreview(img image.Image, scale int) (*imaging.EncodedImage, error) {
	if scale > 1 {
		b := img.Bounds()
		img = imaging.ScaleGray(img, b.Dx()*scale, b.Dy()*scale)
	}
	return imaging.EncodePNGBase64(img)
}

type edgesResult struct {
	EdgePixels int `json:"edge_pixels"`
	*imaging.EncodedImage
}

func (s *Server) handleHoughEdges(args json.RawMessage) (interface{}, error) {
	run, err := s.prepareHough(args)
	if err != nil {
		return nil, err
	}
	img, err := encodePreview(imaging.EdgeImageToGray(run.edges), run.args.Scale)
	if err != nil {
		return nil, err
	}
	return &edgesResult{EdgePixels: run.edges.EdgeCount(), EncodedImage: img}, nil
}

type accumulatorResult struct {
	*detection.AccumulatorResult
	Image *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleHoughAccumulator(args json.RawMessage) (interface{}, error) {
	run, err := s.prepareHough(args)
	if err != nil {
		return nil, err
	}
	acc, err := run.pipeline.Accumulate(run.edges)
	if err != nil {
		return nil, err
	}
	img, err := encodePreview(imaging.GridToGray(acc.Grid), run.args.Scale)
	if err != nil {
		return nil, err
	}
	return &accumulatorResult{AccumulatorResult: acc, Image: img}, nil
}

type peaksResult struct {
	*detection.PeaksResult
	Image *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleHoughPeaks(args json.RawMessage) (interface{}, error) {
	run, err := s.prepareHough(args)
	if err != nil {
		return nil, err
	}
	peaks, err := run.pipeline.Peaks(run.edges)
	if err != nil {
		return nil, err
	}
	img, err := encodePreview(imaging.GridToGray(peaks.PeakSet.Grid), run.args.Scale)
	if err != nil {
		return nil, err
	}
	return &peaksResult{PeaksResult: peaks, Image: img}, nil
}

type linesResult struct {
	*detection.LinesResult
	Overlay *imaging.EncodedImage `json:"overlay,omitempty"`
}

func (s *Server) handleHoughLines(args json.RawMessage) (interface{}, error) {
	run, err := s.prepareHough(args)
	if err != nil {
		return nil, err
	}
	lines, err := run.pipeline.DetectLines(run.edges)
	if err != nil {
		return nil, err
	}

	res := &linesResult{LinesResult: lines}
	if run.args.Overlay != nil && !*run.args.Overlay {
		return res, nil
	}

	src, err := s.cache.Load(run.args.Path)
	if err != nil {
		return nil, err
	}
	cfg := run.pipeline.Config()
	drawn, err := imaging.Overlay(src, lines.Segments, imaging.OverlayStyle{
		LineColor:   cfg.LineColor,
		NormalColor: cfg.NormalColor,
		LineWidth:   cfg.LineWidth,
	})
	if err != nil {
		return nil, err
	}
	res.Overlay, err = imaging.EncodePNGBase64(drawn)
	if err != nil {
		return nil, err
	}
	return res, nil
}
