package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ironsheep/mandelbrot-bmp/internal/bitmap"
	"github.com/ironsheep/mandelbrot-bmp/internal/config"
	"github.com/ironsheep/mandelbrot-bmp/internal/escape"
	"github.com/ironsheep/mandelbrot-bmp/internal/imaging"
	"github.com/ironsheep/mandelbrot-bmp/internal/palette"
	"github.com/ironsheep/mandelbrot-bmp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mandelbrot_render", "image_load").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Rendering
	case "mandelbrot_render":
		return s.handleMandelbrotRender(args)
	case "mandelbrot_evaluate":
		return s.handleMandelbrotEvaluate(args)
	case "mandelbrot_stitch":
		return s.handleMandelbrotStitch(args)

	// Band Information
	case "image_load":
		return s.handleImageLoad(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_color_usage":
		return s.handleImageColorUsage(args)

	// Analysis Helpers
	case "image_compare":
		return s.handleImageCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeConfig overlays args on the default render configuration.
func decodeConfig(args json.RawMessage) (config.Config, error) {
	c := config.Default()
	if len(args) > 0 {
		if err := json.Unmarshal(args, &c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// === Rendering Handlers ===

type renderResult struct {
	Bitmap    string       `json:"bitmap"`
	Dump      string       `json:"dump,omitempty"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	StartRow  int          `json:"start_row"`
	EndRow    int          `json:"end_row"`
	Depth     int          `json:"depth"`
	Palette   string       `json:"palette"`
	FileSize  int          `json:"file_size_bytes"`
	Plane     render.Plane `json:"plane"`
	Stats     render.Stats `json:"stats"`
	ElapsedMS int64        `json:"elapsed_ms"`

	// PaletteCache is the number of distinct escaping counts the palette colored.
	PaletteCache int `json:"palette_cache_entries,omitempty"`
}

func (s *Server) handleMandelbrotRender(args json.RawMessage) (interface{}, error) {
	c, err := decodeConfig(args)
	if err != nil {
		return nil, err
	}
	opts, err := c.RenderOptions()
	if err != nil {
		return nil, err
	}

	var rec *render.Recorder
	if c.Dump {
		rec = render.NewRecorder()
	}

	path := c.BitmapPath()
	start := time.Now()
	st, err := render.RenderFile(path, c.Depth(), opts, rec)
	// The file changed on disk; a cached decode is stale either way.
	s.cache.Evict(path)
	if err != nil {
		return nil, err
	}

	res := &renderResult{
		Bitmap:   path,
		Width:    c.Width,
		Height:   c.EndRow() - c.StartRow(),
		StartRow: c.StartRow(),
		EndRow:   c.EndRow(),
		Depth:    c.Depth(),
		Palette:  string(c.PaletteKind()),
		FileSize: opts.Band(c.Depth()).FileSize(),
		Plane:    opts.Plane(),
		Stats:    st,
	}
	if mem, ok := opts.Mapper.(palette.Memoizer); ok && mem.Cache() != nil {
		res.PaletteCache = mem.Cache().Len()
	}
	if rec != nil {
		if err := rec.Save(c.DumpPath()); err != nil {
			return nil, err
		}
		res.Dump = c.DumpPath()
	}
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res, nil
}

type evaluateArgs struct {
	// X and Y select a pixel of the configured image instead of cx/cy.
	X *int `json:"x"`
	Y *int `json:"y"`
}

type evaluateResult struct {
	Real       float64 `json:"real"`
	Imag       float64 `json:"imag"`
	Count      int     `json:"count"`
	Interior   bool    `json:"interior"`
	InMainBody bool    `json:"in_main_body"`
	Color      string  `json:"color"`
}

func (s *Server) handleMandelbrotEvaluate(args json.RawMessage) (interface{}, error) {
	c, err := decodeConfig(args)
	if err != nil {
		return nil, err
	}
	var a evaluateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	point := complex(c.CenterReal, c.CenterImag)
	if a.X != nil || a.Y != nil {
		if a.X == nil || a.Y == nil {
			return nil, fmt.Errorf("both x and y are required to select a pixel")
		}
		if *a.X < 0 || *a.X >= c.Width || *a.Y < 0 || *a.Y >= c.Height {
			return nil, fmt.Errorf("pixel (%d,%d) outside image %dx%d", *a.X, *a.Y, c.Width, c.Height)
		}
		point = render.NewPlane(point, c.Precision, c.Width, c.Height).Point(*a.X, *a.Y)
	}

	m, err := c.Mapper()
	if err != nil {
		return nil, err
	}
	n := escape.Evaluate(point, c.MaxIterations, c.EscapeRadius)
	return &evaluateResult{
		Real:       real(point),
		Imag:       imag(point),
		Count:      n,
		Interior:   n >= c.MaxIterations,
		InMainBody: escape.InMainBody(point),
		Color:      m.Map(n, c.MaxIterations).Hex(),
	}, nil
}

type stitchArgs struct {
	Paths        []string `json:"paths"`
	Height       int      `json:"height"`
	Output       string   `json:"output"`
	BW           bool     `json:"bw"`
	Preview      string   `json:"preview"`
	PreviewScale float64  `json:"preview_scale"`
	Overlay      bool     `json:"overlay"`
}

type stitchToolResult struct {
	*imaging.StitchResult
	Preview string `json:"preview,omitempty"`
}

func (s *Server) handleMandelbrotStitch(args json.RawMessage) (interface{}, error) {
	var a stitchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("no band paths given")
	}
	if a.Output == "" {
		return nil, fmt.Errorf("no output path given")
	}
	if a.PreviewScale == 0 {
		a.PreviewScale = 1.0
	}

	depth := bitmap.DepthTrueColor
	if a.BW {
		depth = bitmap.DepthIndexed
	}

	s.cache.Evict(a.Output)
	res, err := imaging.StitchFiles(s.cache, a.Paths, a.Height, a.Output, depth)
	if err != nil {
		return nil, err
	}
	out := &stitchToolResult{StitchResult: res}
	if a.Preview == "" {
		return out, nil
	}

	img, err := s.cache.Load(a.Output)
	if err != nil {
		return nil, err
	}
	if a.Overlay {
		bands, err := imaging.LoadBands(s.cache, a.Paths)
		if err != nil {
			return nil, err
		}
		img = imaging.BandOverlay(img, bandStarts(bands), "")
	}
	preview, err := imaging.Preview(img, a.PreviewScale)
	if err != nil {
		return nil, err
	}
	if err := imaging.SavePreview(a.Preview, preview); err != nil {
		return nil, err
	}
	out.Preview = a.Preview
	return out, nil
}

func bandStarts(bands []imaging.Band) []int {
	starts := make([]int, len(bands))
	for i, b := range bands {
		starts[i] = b.StartRow
	}
	return starts
}

// === Band Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadBandInfo(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePreview(cropped)
}

type imagePreviewArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 0.5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	scaled, err := imaging.Preview(img, a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePreview(scaled)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageColorUsageArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) handleImageColorUsage(args json.RawMessage) (interface{}, error) {
	var a imageColorUsageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 10
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ColorUsage(img, a.Count), nil
}

// === Analysis Helper Handlers ===

type imageCompareArgs struct {
	Path1 string `json:"path1"`
	Path2 string `json:"path2"`
}

func (s *Server) handleImageCompare(args json.RawMessage) (interface{}, error) {
	var a imageCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	imgs := make([]image.Image, 2)
	for i, p := range []string{a.Path1, a.Path2} {
		img, err := s.cache.Load(p)
		if err != nil {
			return nil, err
		}
		imgs[i] = img
	}
	return imaging.Compare(imgs[0], imgs[1])
}
