package server

import (
	"bytes"
	"encoding/json"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
)

// serve feeds lines to a fresh Serve loop and decodes every response line.
func serve(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var resps []MCPResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r MCPResponse
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		resps = append(resps, r)
	}
	return resps
}

// toolCall formats a tools/call request line.
func toolCall(t *testing.T, id int, name string, args map[string]interface{}) string {
	t.Helper()
	b, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params":  map[string]interface{}{"name": name, "arguments": args},
	})
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return string(b)
}

// toolText returns the JSON text a successful tool call produced.
func toolText(t *testing.T, r MCPResponse) string {
	t.Helper()
	if r.Error != nil {
		t.Fatalf("request %v failed: %+v", r.ID, r.Error)
	}
	result := r.Result.(map[string]interface{})
	content := result["content"].([]interface{})
	return content[0].(map[string]interface{})["text"].(string)
}

func TestServe_Session(t *testing.T) {
	s := New()
	s.Version = "1.2.3"

	resps := serve(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":"p","method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`,
	)
	if len(resps) != 4 {
		t.Fatalf("got %d responses, want 4", len(resps))
	}

	initRes := resps[0].Result.(map[string]interface{})
	info := initRes["serverInfo"].(map[string]interface{})
	if initRes["protocolVersion"] != protocolVersion || info["name"] != "mandelbrot-mcp" || info["version"] != "1.2.3" {
		t.Errorf("initialize: %v", initRes)
	}

	if resps[1].ID != "p" || resps[1].Error != nil {
		t.Errorf("ping: %+v", resps[1])
	}

	tools := resps[2].Result.(map[string]interface{})["tools"].([]interface{})
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list: got %d tools, want %d", len(tools), len(GetToolDefinitions()))
	}

	if resps[3].Error == nil || resps[3].Error.Code != codeMethodNotFound || resps[3].ID != float64(4) {
		t.Errorf("unknown method: %+v", resps[3])
	}
}

func TestServe_ParseError(t *testing.T) {
	resps := serve(t, New(),
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}
	if resps[0].ID != nil || resps[0].Error == nil || resps[0].Error.Code != codeParseError {
		t.Errorf("bad line: %+v", resps[0])
	}
	if resps[1].ID != float64(2) || resps[1].Error != nil {
		t.Errorf("the loop should continue after a bad line: %+v", resps[1])
	}
}

func TestServe_ToolErrors(t *testing.T) {
	dir := t.TempDir()
	a := createTestBand(t, dir, 0, 16, 8, color.Black)
	b := createTestBand(t, dir, 4, 16, 8, color.Black)
	out := filepath.Join(dir, "full.bmp")

	tests := []struct {
		name     string
		line     string
		wantCode int
		wantData string
	}{
		{
			"render zero width",
			toolCall(t, 1, "mandelbrot_render", map[string]interface{}{"width": 0, "out_dir": dir}),
			codeToolFailed, "invalid configuration: image size 0x300",
		},
		{
			"render unknown palette",
			toolCall(t, 1, "mandelbrot_render", map[string]interface{}{"palette": "plaid", "out_dir": dir}),
			codeToolFailed, `unknown palette "plaid"`,
		},
		{
			"render band outside the image",
			toolCall(t, 1, "mandelbrot_render", map[string]interface{}{"height": 100, "start_line": 2, "out_dir": dir}),
			codeToolFailed, "start line 2 (row 400)",
		},
		{
			"render missing directory",
			toolCall(t, 1, "mandelbrot_render", map[string]interface{}{"width": 4, "height": 4, "out_dir": filepath.Join(dir, "absent")}),
			codeToolFailed, "failed to create bitmap",
		},
		{
			"stitch without bands",
			toolCall(t, 1, "mandelbrot_stitch", map[string]interface{}{"output": out}),
			codeToolFailed, "no band paths given",
		},
		{
			"stitch overlapping bands",
			toolCall(t, 1, "mandelbrot_stitch", map[string]interface{}{"paths": []string{a, b}, "output": out}),
			codeToolFailed, "band at row 4 overlaps band [0, 8)",
		},
		{
			"stitch file without start row",
			toolCall(t, 1, "mandelbrot_stitch", map[string]interface{}{"paths": []string{out}, "output": out}),
			codeToolFailed, "has no _<row> suffix",
		},
		{
			"arguments of the wrong shape",
			`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":"mandelbrot_render"}`,
			codeInvalidParams, "cannot unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resps := serve(t, New(), tt.line)
			if len(resps) != 1 {
				t.Fatalf("got %d responses, want 1", len(resps))
			}
			e := resps[0].Error
			if e == nil {
				t.Fatalf("expected an error, got %+v", resps[0])
			}
			if e.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", e.Code, tt.wantCode)
			}
			data, _ := e.Data.(string)
			if !strings.Contains(data, tt.wantData) {
				t.Errorf("data: got %q, want it to contain %q", data, tt.wantData)
			}
		})
	}
}

func TestServe_RenderEvictsCachedBitmap(t *testing.T) {
	out := filepath.Join(t.TempDir(), "band_0.bmp")
	sample := map[string]interface{}{"path": out, "x": 0, "y": 0}

	// Every point of the second render lies far outside the set and escapes at once.
	resps := serve(t, New(),
		toolCall(t, 1, "mandelbrot_render", map[string]interface{}{"width": 4, "height": 4, "max_iterations": 0, "output": out, "dump": false}),
		toolCall(t, 2, "image_sample_color", sample),
		toolCall(t, 3, "mandelbrot_render", map[string]interface{}{"width": 4, "height": 4, "cx": 10, "output": out, "dump": false}),
		toolCall(t, 4, "image_sample_color", sample),
		toolCall(t, 5, "image_load", map[string]interface{}{"path": out}),
	)
	if len(resps) != 5 {
		t.Fatalf("got %d responses, want 5", len(resps))
	}

	var before, after struct {
		Hex      string `json:"hex"`
		Interior bool   `json:"interior"`
	}
	if err := json.Unmarshal([]byte(toolText(t, resps[1])), &before); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(toolText(t, resps[3])), &after); err != nil {
		t.Fatal(err)
	}
	if !before.Interior {
		t.Errorf("zero iterations should render black, got %s", before.Hex)
	}
	if after.Interior {
		t.Errorf("second render still served from cache: %s", after.Hex)
	}

	if !strings.Contains(toolText(t, resps[4]), `"bits_per_pixel": 24`) {
		t.Errorf("image_load: %s", toolText(t, resps[4]))
	}
}

func TestServe_InitializeClearsCache(t *testing.T) {
	s := New()
	path := createTestBand(t, t.TempDir(), 0, 4, 4, color.White)
	if _, err := s.cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	serve(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if n := s.cache.Len(); n != 0 {
		t.Errorf("cache holds %d images after initialize, want 0", n)
	}
}

func TestNew(t *testing.T) {
	s := New()
	if s.cache == nil || s.cache.Len() != 0 {
		t.Fatal("New() should start with an empty cache")
	}
	if s.Version != "dev" {
		t.Errorf("Version: got %q, want dev", s.Version)
	}
}
