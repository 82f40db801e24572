package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ironsheep/mandelbrot-bmp/internal/imaging"
)

const protocolVersion = "2024-11-05"

// JSON-RPC error codes returned by the server.
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeToolFailed     = -32000
)

// maxRequestBytes bounds one request line; stitch requests carry path lists.
const maxRequestBytes = 1024 * 1024

// Server exposes rendering and band inspection as MCP tools over
// newline-delimited JSON-RPC.
type Server struct {
	// Version is reported in the initialize response.
	Version string
	// Debug logs every request with its handling time.
	Debug bool

	cache *imaging.ImageCache
}

// MCPRequest is one JSON-RPC request line.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse carries either Result or Error for the request with the same ID.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the error member of a response. Data holds the Go error text.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New returns a server with an empty image cache. Debug logging follows
// MANDELBROT_LOG_LEVEL.
func New() *Server {
	return &Server{
		Version: "dev",
		Debug:   os.Getenv("MANDELBROT_LOG_LEVEL") == "debug",
		cache:   imaging.NewImageCache(),
	}
}

// Run serves stdin until EOF, answering on stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve answers each request line read from r with one response line on w.
// Lines that are not JSON get a parse error with a null id; notifications get
// no answer.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			start := time.Now()
			resp = s.handleRequest(&req)
			if s.Debug {
				log.Printf("Request %v %s handled in %v", req.ID, req.Method, time.Since(start))
			}
		}
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return s.result(req.ID, map[string]interface{}{})
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, "Method not found: "+req.Method, "")
	}
}

// handleInitialize starts a session. Images decoded in an earlier session
// may have been rewritten since, so the cache starts empty.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	s.cache.Clear()
	return s.result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "mandelbrot-mcp",
			"version": s.Version,
		},
	})
}

func (s *Server) result(id interface{}, v interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: id, Result: v}
}

// errorResponse builds an error response; an empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
