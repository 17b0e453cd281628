package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domlens/analyzer"
	"github.com/hazyhaar/domlens/store"
)

// RegisterMCP registers the domlens tools on an MCP server.
func (s *Server) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyzeTool(srv)
	s.registerGetTool(srv)
	s.registerListTool(srv)
}

type endpoint func(ctx context.Context, req any) (any, error)

// registerTool bridges a typed endpoint into the MCP tool contract:
// decode the arguments, run, marshal the reply as a text content block.
func registerTool(srv *mcp.Server, tool *mcp.Tool, ep endpoint, decode func(*mcp.CallToolRequest) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := decode(req)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := ep(ctx, r)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// --- analyze ---

type mcpAnalyzeReq struct {
	URL         string `json:"url"`
	Name        string `json:"name,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
	Save        bool   `json:"save,omitempty"`
}

func (s *Server) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domlens_analyze",
		Description: "Analyze the layout of a rendered web page: slots, sections, repeated groups, pattern summary and screen type.",
		InputSchema: inputSchema(map[string]any{
			"url":         map[string]any{"type": "string", "description": "Page URL to analyze"},
			"name":        map[string]any{"type": "string", "description": "Human name used to derive the result id"},
			"componentId": map[string]any{"type": "string", "description": "Explicit component id for the result"},
			"save":        map[string]any{"type": "boolean", "description": "Persist the result"},
		}, []string{"url"}),
	}

	ep := func(ctx context.Context, req any) (any, error) {
		r := req.(*mcpAnalyzeReq)
		resp, err := s.analyzer.Analyze(ctx, analyzer.Request{
			URL:         r.URL,
			Name:        r.Name,
			ComponentID: r.ComponentID,
		})
		if err != nil {
			return nil, err
		}
		out := AnalyzeResponse{Result: resp.Result}
		if r.Save && s.store != nil {
			id, err := s.store.Save(ctx, r.URL, resp.Result)
			if err != nil {
				return nil, err
			}
			out.RecordID = id
		}
		return out, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r mcpAnalyzeReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		if r.URL == "" {
			return nil, errors.New("url required")
		}
		return &r, nil
	}

	registerTool(srv, tool, ep, decode)
}

// --- get ---

type mcpGetReq struct {
	ID string `json:"id"`
}

func (s *Server) registerGetTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domlens_get_layout",
		Description: "Fetch one stored layout analysis by record id, including the full structure.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Record id"},
		}, []string{"id"}),
	}

	ep := func(ctx context.Context, req any) (any, error) {
		r := req.(*mcpGetReq)
		if s.store == nil {
			return nil, errors.New("store not configured")
		}
		return s.store.Get(ctx, r.ID)
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r mcpGetReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		if r.ID == "" {
			return nil, errors.New("id required")
		}
		return &r, nil
	}

	registerTool(srv, tool, ep, decode)
}

// --- list ---

type mcpListReq struct {
	URL        string `json:"url,omitempty"`
	ScreenType string `json:"screenType,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (s *Server) registerListTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domlens_list_layouts",
		Description: "List stored layout analyses, newest first, optionally filtered by url or screen type.",
		InputSchema: inputSchema(map[string]any{
			"url":        map[string]any{"type": "string", "description": "Filter by exact URL"},
			"screenType": map[string]any{"type": "string", "description": "Filter by screen type"},
			"limit":      map[string]any{"type": "integer", "description": "Max records, default 50"},
		}, nil),
	}

	ep := func(ctx context.Context, req any) (any, error) {
		r := req.(*mcpListReq)
		if s.store == nil {
			return nil, errors.New("store not configured")
		}
		records, err := s.store.List(ctx, store.ListOptions{
			URL:        r.URL,
			ScreenType: r.ScreenType,
			Limit:      r.Limit,
		})
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []store.Record{}
		}
		return map[string]any{"layouts": records}, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r mcpListReq
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &r, nil
	}

	registerTool(srv, tool, ep, decode)
}
