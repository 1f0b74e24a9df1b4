package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/gops/agent"

	"github.com/drugkb/drugdb/embeddings"
	"github.com/drugkb/drugdb/embeddings/ollama"
	"github.com/drugkb/drugdb/embeddings/openai"
)

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "serve":
		serveCmd(os.Args[2:])
	case "query":
		queryCmd(os.Args[2:])
	case "prompt":
		promptCmd(os.Args[2:])
	case "call":
		callCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: drugdb <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve   Run the MCP server (stdio by default, streamable HTTP with --mcp-addr)")
	fmt.Fprintln(os.Stderr, "  query   Run one SQL statement against the drug database and print the rows")
	fmt.Fprintln(os.Stderr, "  prompt  Print the drugdb_prompt schema document")
	fmt.Fprintln(os.Stderr, "  call    Invoke query_data on a running HTTP MCP server")
}

type embedderOptions struct {
	ollamaBaseURL string
	dimensions    int
}

func selectEmbedder(name, apiKey, model string, opts embedderOptions) (embeddings.Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return embeddings.NewSimpleEmbedder(opts.dimensions), nil
	case "ollama":
		return &ollama.Embedder{C: ollama.NewClient(model, opts.ollamaBaseURL)}, nil
	case "", "openai":
		client := openai.NewClient(apiKey, model)
		client.Dimensions = opts.dimensions
		return &openai.Embedder{C: client}, nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", name)
	}
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}
