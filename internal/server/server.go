// Package server exposes the visibility classifier to agents over the
// Model Context Protocol.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/visible/internal/inspect"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/version"
	"gopkg.in/yaml.v3"
)

// Config holds MCP server configuration.
type Config struct {
	Transport   string
	Port        int
	SessionTTL  time.Duration
	Concurrency int
}

// Server wraps the MCP server with the session pool.
type Server struct {
	cfg    Config
	pool   *SessionPool
	logger *log.Logger
	mcp    *mcpserver.MCPServer

	// mu serialises tool calls; sessions are not shared between calls.
	mu sync.Mutex
}

// New creates a server whose tools open targets with open.
func New(cfg Config, open OpenFunc, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		pool:   NewSessionPool(cfg.SessionTTL, open, logger),
		logger: logger,
	}
	s.mcp = mcpserver.NewMCPServer("visible", version.Version)
	s.registerTools()
	return s
}

// Serve runs the configured transport until it stops, then closes pooled
// sessions.
func (s *Server) Serve() error {
	defer s.pool.CloseAll()
	switch s.cfg.Transport {
	case "stdio":
		s.logger.Info("serving MCP", "transport", "stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.logger.Info("serving MCP", "transport", "streamable-http", "addr", addr)
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("is_visible",
			mcp.WithDescription("Report whether nodes on a page are visible: non-zero width or height and no literal display=\"none\" attribute."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Page URL or path to a YAML page snapshot")),
			mcp.WithString("node", mcp.Required(), mcp.Description("'window', 'document' or a CSS selector; comma-separate several")),
		),
		s.handleIsVisible,
	)

	s.mcp.AddTool(
		mcp.NewTool("read",
			mcp.WithDescription("Read the element tree of a page with each element marked visible or hidden."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Page URL or path to a YAML page snapshot")),
			mcp.WithBoolean("visible_only", mcp.Description("Drop hidden elements")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with path breadcrumbs")),
			mcp.WithString("tags", mcp.Description("Comma-separated tag names to include (case-insensitive)")),
			mcp.WithString("bbox", mcp.Description("Only include elements intersecting x,y,w,h (viewport CSS pixels)")),
		),
		s.handleRead,
	)

	s.mcp.AddTool(
		mcp.NewTool("verify",
			mcp.WithDescription("Check every [data-test] fixture on a page against its data-visible expectation."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Page URL or path to a YAML page snapshot")),
		),
		s.handleVerify,
	)
}

// toText serializes v to YAML for the MCP response.
func toText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// withSession runs fn against a pooled session for the request's target.
// A failing call drops the session so the next call starts clean.
func (s *Server) withSession(ctx context.Context, request mcp.CallToolRequest, fn func(*sessionCall) (interface{}, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target := StringParam(params, "target", "")
	if target == "" {
		return mcp.NewToolResultError("target is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, release, err := s.pool.Acquire(ctx, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := fn(&sessionCall{ctx: ctx, params: params, session: session})
	release()
	if err != nil {
		s.logger.Debug("tool call failed", "tool", request.Params.Name, "target", target, "error", err)
		s.pool.Invalidate(target)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(v)
}

func (s *Server) handleIsVisible(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(ctx, request, func(c *sessionCall) (interface{}, error) {
		nodes := ListParam(c.params, "node")
		if len(nodes) == 0 {
			return nil, fmt.Errorf("node is required")
		}
		return inspect.Check(c.ctx, c.session, nodes)
	})
}

func (s *Server) handleRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := inspect.ReadOptions{
		Tags:        inspect.ParseTags(StringParam(params, "tags", "")),
		VisibleOnly: BoolParam(params, "visible_only", false),
		Flat:        BoolParam(params, "flat", false),
	}
	if bbox := StringParam(params, "bbox", ""); bbox != "" {
		b, err := platform.ParseBBox(bbox)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.BBox = b
	}
	return s.withSession(ctx, request, func(c *sessionCall) (interface{}, error) {
		return inspect.Read(c.ctx, c.session, opts)
	})
}

func (s *Server) handleVerify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(ctx, request, func(c *sessionCall) (interface{}, error) {
		return inspect.Verify(c.ctx, c.session, s.cfg.Concurrency)
	})
}
