package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domlens/analyzer"
	"github.com/hazyhaar/domlens/layout"
	"github.com/hazyhaar/domlens/store"
)

var testMCPImpl = &mcp.Implementation{Name: "domlens-test", Version: "0.1.0"}

func mcpSession(t *testing.T, srv *Server) *mcp.ClientSession {
	t.Helper()
	mcpSrv := mcp.NewServer(testMCPImpl, nil)
	srv.RegisterMCP(mcpSrv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = mcpSrv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) tool error: %v", name, result.Content)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Analyze(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{resp: &analyzer.Response{Result: stubResult()}})
	session := mcpSession(t, srv)

	text := mcpCallTool(t, session, "domlens_analyze", map[string]any{
		"url": "https://example.com", "save": true,
	})

	var resp struct {
		RecordID string         `json:"recordId"`
		Result   *layout.Result `json:"result"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Result == nil || resp.Result.ScreenType != "landing" {
		t.Errorf("result = %+v", resp.Result)
	}
	if resp.RecordID == "" {
		t.Error("expected record id with save=true")
	}
}

func TestMCP_AnalyzeMissingURL(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{resp: &analyzer.Response{Result: stubResult()}})
	session := mcpSession(t, srv)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "domlens_analyze",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing url")
	}
}

func TestMCP_GetAndList(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{resp: &analyzer.Response{Result: stubResult()}})
	session := mcpSession(t, srv)

	text := mcpCallTool(t, session, "domlens_analyze", map[string]any{
		"url": "https://example.com", "save": true,
	})
	var analyzed struct {
		RecordID string `json:"recordId"`
	}
	json.Unmarshal([]byte(text), &analyzed)

	text = mcpCallTool(t, session, "domlens_get_layout", map[string]any{"id": analyzed.RecordID})
	var rec store.Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.ID != analyzed.RecordID || rec.Result == nil {
		t.Errorf("record = %+v", rec)
	}

	text = mcpCallTool(t, session, "domlens_list_layouts", map[string]any{"screenType": "landing"})
	var list struct {
		Layouts []store.Record `json:"layouts"`
	}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list.Layouts) != 1 {
		t.Errorf("layouts = %d, want 1", len(list.Layouts))
	}
}

func TestMCP_GetNotFound(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{resp: &analyzer.Response{Result: stubResult()}})
	session := mcpSession(t, srv)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "domlens_get_layout",
		Arguments: map[string]any{"id": "missing"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing record")
	}
}
