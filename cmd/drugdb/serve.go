package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"

	dmcp "github.com/drugkb/drugdb/mcp"
	"github.com/drugkb/drugdb/embeddings/openai"
	"github.com/drugkb/drugdb/service"
	"github.com/drugkb/drugdb/store"
)

func serveCmd(args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := flags.String("db", "drug.db", "DuckDB database path")
	configPath := flags.String("config", "config.yaml", "config yaml (optional)")
	mcpAddr := flags.String("mcp-addr", "", "serve streamable HTTP on this address instead of stdio")
	model := flags.String("model", "text-embedding-3-small", "embedding model")
	openAIKey := flags.String("openai-key", "", "OpenAI API key (optional, defaults to config or OPENAI_API_KEY)")
	embedderName := flags.String("embedder", "openai", "embedder: openai|simple|ollama")
	ollamaBaseURL := flags.String("ollama-base-url", "", "ollama base URL (or OLLAMA_BASE_URL)")
	dims := flags.Int("dims", openai.DefaultDimensions, "embedding vector width")
	metricsLog := flags.Bool("metrics-log", false, "log mcp metric lines")
	flags.Parse(args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A broken config is reported but does not stop startup; a missing API
	// key surfaces on the first embeddings call instead.
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
		log.Fatalf("serve: open db: %v", err)
	}

	svc, err := service.NewService(service.WithStore(st))
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	defer func() { _ = svc.Close() }()

	addr := resolveMCPAddr(*mcpAddr, cfg)

	opts := []mcpsrv.Option{
		mcpsrv.WithImplementation(schema.Implementation{Name: "drugdb-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(dmcp.NewHandler(svc, *metricsLog)),
	}
	if addr != "" {
		opts = append(opts,
			mcpsrv.WithEndpointAddress(addr),
			mcpsrv.WithRootRedirect(true),
			mcpsrv.WithStreamableURI("/mcp"),
		)
	}
	server, err := mcpsrv.New(opts...)
	if err != nil {
		log.Fatal(err)
	}

	if addr == "" {
		serveStdio(ctx, server)
		return
	}
	serveHTTP(ctx, cancel, server, addr)
}

func serveStdio(ctx context.Context, server *mcpsrv.Server) {
	log.Printf("drugdb-mcp serving on stdio")
	if err := server.Stdio(ctx).ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func serveHTTP(ctx context.Context, cancel context.CancelFunc, server *mcpsrv.Server, addr string) {
	server.UseStreamableHTTP(true)
	httpServer := server.HTTP(ctx, addr)
	httpServer.ReadHeaderTimeout = 10 * time.Second
	httpServer.ReadTimeout = 60 * time.Second
	httpServer.WriteTimeout = 60 * time.Second
	httpServer.IdleTimeout = 120 * time.Second

	log.Printf("drugdb-mcp listening on %s", httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	cancel()
	log.Printf("shutdown signal received: %v", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Printf("drugdb-mcp stopped")
}

func resolveMCPAddr(flagAddr string, cfg *service.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	if cfg != nil {
		if cfg.MCPServer.Addr != "" {
			return cfg.MCPServer.Addr
		}
		if cfg.MCPServer.Port > 0 {
			return fmt.Sprintf("127.0.0.1:%d", cfg.MCPServer.Port)
		}
	}
	return ""
}
