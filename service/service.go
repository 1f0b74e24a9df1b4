package service

import (
	"context"
	"fmt"

	"github.com/drugkb/drugdb/store"
)

// Option configures the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(s *store.Store) Option {
	return func(svc *Service) { svc.store = s }
}

// Service exposes query execution over the drug database.
type Service struct {
	store *store.Store
}

// NewService creates a new Service.
func NewService(opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.store == nil {
		return nil, fmt.Errorf("service: store is required")
	}
	return svc, nil
}

// Query runs the SQL verbatim and returns the materialized result set.
func (s *Service) Query(ctx context.Context, sql string) (store.Result, error) {
	return s.store.Execute(ctx, sql)
}

// Close releases the backing store.
func (s *Service) Close() error {
	return s.store.Close()
}
