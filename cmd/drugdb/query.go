package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	dmcp "github.com/drugkb/drugdb/mcp"
	"github.com/drugkb/drugdb/embeddings/openai"
	"github.com/drugkb/drugdb/service"
	"github.com/drugkb/drugdb/store"
)

func queryCmd(args []string) {
	flags := flag.NewFlagSet("query", flag.ExitOnError)
	dbPath := flags.String("db", "drug.db", "DuckDB database path")
	configPath := flags.String("config", "", "config yaml (optional)")
	sqlText := flags.String("sql", "", "SQL text (required; positional argument also accepted)")
	model := flags.String("model", "text-embedding-3-small", "embedding model")
	openAIKey := flags.String("openai-key", "", "OpenAI API key (optional, defaults to config or OPENAI_API_KEY)")
	embedderName := flags.String("embedder", "openai", "embedder: openai|simple|ollama")
	ollamaBaseURL := flags.String("ollama-base-url", "", "ollama base URL (or OLLAMA_BASE_URL)")
	dims := flags.Int("dims", openai.DefaultDimensions, "embedding vector width")
	flags.Parse(args)

	queryText := *sqlText
	if queryText == "" && flags.NArg() > 0 {
		queryText = flags.Arg(0)
	}
	if queryText == "" {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cfg *service.Config
	if *configPath != "" {
		var err error
		cfg, err = service.LoadConfig(*configPath)
		if err != nil {
			log.Printf("load config: %v", err)
		}
	}

	dbPathVal := *dbPath
	if cfg != nil && cfg.DB != "" {
		dbPathVal = cfg.DB
	}
	modelVal := *model
	if cfg != nil && cfg.Model != "" {
		modelVal = cfg.Model
	}
	dimsVal := *dims
	if cfg != nil && cfg.Dimensions > 0 {
		dimsVal = cfg.Dimensions
	}
	apiKey := *openAIKey
	if apiKey == "" && cfg != nil {
		apiKey = cfg.OpenAI.APIKey
	}

	emb, err := selectEmbedder(*embedderName, apiKey, modelVal, embedderOptions{
		ollamaBaseURL: *ollamaBaseURL,
		dimensions:    dimsVal,
	})
	if err != nil {
		log.Fatalf("embedder: %v", err)
	}

	st, err := store.Open(ctx, store.Config{
		Path:       dbPathVal,
		Extensions: cfg.StoreExtensions(),
		Embedder:   emb,
	})
	if err != nil {
		log.Fatalf("query: open db: %v", err)
	}

	svc, err := service.NewService(service.WithStore(st))
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	defer func() { _ = svc.Close() }()

	result, err := svc.Query(ctx, queryText)
	if err != nil {
		log.Fatalf("query: %v", err)
	}
	fmt.Println(result.String())
}

func promptCmd(args []string) {
	flags := flag.NewFlagSet("prompt", flag.ExitOnError)
	flags.Parse(args)
	fmt.Print(dmcp.PromptText())
}
