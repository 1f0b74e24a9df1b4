package mcp

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

//go:embed tools/query_data.md
var descQueryData string

func registerTools(registry *protoserver.Registry, h *Handler) error {
	return protoserver.RegisterTool[*QueryInput, *QueryOutput](registry, "query_data", descQueryData, func(ctx context.Context, in *QueryInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out := h.queryData(ctx, in)
		return buildTextResult(out), nil
	})
}

// buildTextResult renders the query outcome as a normal tool result. Errors
// are carried in the result text with the "Error: " prefix, never as a
// jsonrpc fault.
func buildTextResult(out *QueryOutput) *schema.CallToolResult {
	res := &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: out.Result},
		},
		StructuredContent: map[string]any{"result": out.Result},
	}
	if out.IsError {
		isError := true
		res.IsError = &isError
	}
	return res
}

func (h *Handler) queryData(ctx context.Context, in *QueryInput) *QueryOutput {
	start := time.Now()
	if h == nil || h.service == nil {
		return &QueryOutput{Result: "Error: service unavailable", IsError: true}
	}
	if in == nil {
		in = &QueryInput{}
	}
	if in.SQL == "" {
		return &QueryOutput{Result: "Error: missing sql", IsError: true}
	}
	result, err := h.service.Query(ctx, in.SQL)
	if err != nil {
		if h.metricsLog {
			log.Printf("mcp metric op=query_data dur=%s err=%v", time.Since(start), err)
		}
		return &QueryOutput{Result: fmt.Sprintf("Error: %s", err), IsError: true}
	}
	if h.metricsLog {
		log.Printf("mcp metric op=query_data rows=%d dur=%s", len(result.Rows), time.Since(start))
	}
	return &QueryOutput{Result: result.String()}
}
