package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	duckdb "github.com/duckdb/duckdb-go/v2"

	"github.com/drugkb/drugdb/embeddings"
)

// embeddingsFunc adapts an Embedder into a DuckDB scalar function
// VARCHAR -> LIST(FLOAT). Each evaluation issues one embedding request; no
// caching, so identical inputs embed independently.
type embeddingsFunc struct {
	ctx      context.Context
	embedder embeddings.Embedder

	input  duckdb.TypeInfo
	result duckdb.TypeInfo
}

func newEmbeddingsFunc(ctx context.Context, embedder embeddings.Embedder) (*embeddingsFunc, error) {
	varchar, err := duckdb.NewTypeInfo(duckdb.TYPE_VARCHAR)
	if err != nil {
		return nil, fmt.Errorf("store: varchar type info: %w", err)
	}
	elem, err := duckdb.NewTypeInfo(duckdb.TYPE_FLOAT)
	if err != nil {
		return nil, fmt.Errorf("store: float type info: %w", err)
	}
	list, err := duckdb.NewListInfo(elem)
	if err != nil {
		return nil, fmt.Errorf("store: list type info: %w", err)
	}
	return &embeddingsFunc{ctx: ctx, embedder: embedder, input: varchar, result: list}, nil
}

func (f *embeddingsFunc) Config() duckdb.ScalarFuncConfig {
	return duckdb.ScalarFuncConfig{
		InputTypeInfos: []duckdb.TypeInfo{f.input},
		ResultTypeInfo: f.result,
		Volatile:       true,
	}
}

func (f *embeddingsFunc) Executor() duckdb.ScalarFuncExecutor {
	return duckdb.ScalarFuncExecutor{
		RowExecutor: func(values []driver.Value) (any, error) {
			if len(values) != 1 {
				return nil, fmt.Errorf("embeddings expects 1 argument, got %d", len(values))
			}
			text, ok := values[0].(string)
			if !ok {
				return nil, fmt.Errorf("embeddings expects a VARCHAR argument, got %T", values[0])
			}
			// The embeddings endpoint behaves poorly on raw newlines.
			text = strings.ReplaceAll(text, "\n", " ")
			vector, err := f.embedder.EmbedQuery(f.ctx, text)
			if err != nil {
				return nil, fmt.Errorf("embeddings: %w", err)
			}
			return vector, nil
		},
	}
}

// registerEmbeddings installs the scalar function on the connection. The
// blocking network call happens inside query execution, once per row the
// engine evaluates it for.
func registerEmbeddings(ctx context.Context, conn *sql.Conn, name string, embedder embeddings.Embedder) error {
	fn, err := newEmbeddingsFunc(ctx, embedder)
	if err != nil {
		return err
	}
	if err := duckdb.RegisterScalarUDF(conn, name, fn); err != nil {
		return fmt.Errorf("store: register %s: %w", name, err)
	}
	return nil
}
