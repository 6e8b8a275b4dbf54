package client

import (
	"context"
	"log/slog"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/service"
	"tally/internal/store"
)

// Local runs commands in process against the data directory.
type Local struct {
	service  *service.Service
	registry *store.Registry
}

// NewLocal wires a local client over the config's data directory.
func NewLocal(cfg *config.Config, logger *slog.Logger) (*Local, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	registry := store.NewRegistry(cfg.Paths.DataDir)
	return &Local{
		service:  service.New(registry, cfg.Client.DefaultCategory, logger),
		registry: registry,
	}, nil
}

func (l *Local) Add(ctx context.Context, period string, req api.AddRequest) (int64, error) {
	return l.service.Add(ctx, period, req)
}

func (l *Local) Get(ctx context.Context, period, table string, id int64) (api.Element, error) {
	return l.service.Get(ctx, period, table, id)
}

func (l *Local) Update(ctx context.Context, period, table string, id int64, req api.UpdateRequest) error {
	return l.service.Update(ctx, period, table, id, req)
}

func (l *Local) Remove(ctx context.Context, period, table string, id int64) error {
	return l.service.Remove(ctx, period, table, id)
}

func (l *Local) Copy(ctx context.Context, req api.CopyRequest) (int64, error) {
	return l.service.Copy(ctx, req)
}

func (l *Local) List(ctx context.Context, period string, filters []string) (api.Elements, error) {
	return l.service.List(ctx, period, filters)
}

func (l *Local) Periods(ctx context.Context) ([]string, error) {
	return l.service.Periods(ctx)
}

// Close releases the period store handles.
func (l *Local) Close() error {
	return l.registry.Close()
}
