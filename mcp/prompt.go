package mcp

import (
	"context"
	_ "embed"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

//go:embed prompts/drugdb.md
var promptDrugDB string

const promptName = "drugdb_prompt"

// PromptText returns the constant schema/usage document served as
// drugdb_prompt. It never varies between calls.
func PromptText() string {
	return promptDrugDB
}

func registerPrompts(registry *protoserver.Registry) {
	registry.RegisterPrompts(&schema.Prompt{Name: promptName}, getPrompt)
}

func getPrompt(ctx context.Context, request *schema.GetPromptRequestParams) (*schema.GetPromptResult, *jsonrpc.Error) {
	return &schema.GetPromptResult{
		Messages: []schema.PromptMessage{
			{Role: schema.RoleUser, Content: schema.TextContent{Type: "text", Text: promptDrugDB}},
		},
	}, nil
}
