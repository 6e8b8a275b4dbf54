package service

import (
	"context"
	"log/slog"
	"time"

	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/store"
)

// Service executes ledger commands against the period stores.
type Service struct {
	registry        *store.Registry
	defaultCategory string
	logger          *slog.Logger
}

// New wires a service over the given registry. The default category is applied
// to entries that do not name one.
func New(registry *store.Registry, defaultCategory string, logger *slog.Logger) *Service {
	if defaultCategory == "" {
		defaultCategory = "unspecified"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		registry:        registry,
		defaultCategory: defaultCategory,
		logger:          logger.With(logging.String(logging.FieldComponent, "service")),
	}
}

// DefaultCategory returns the category applied to entries that do not name one.
func (s *Service) DefaultCategory() string {
	return s.defaultCategory
}

// Periods lists the period names known to the data directory, sorted.
func (s *Service) Periods(context.Context) ([]string, error) {
	return s.registry.Periods()
}

// open resolves an empty period to the current year and returns its store.
func (s *Service) open(period string) (*store.Store, string, error) {
	if period == "" {
		period = ledger.DefaultPeriod(time.Now())
	}
	st, err := s.registry.Open(period)
	if err != nil {
		return nil, "", err
	}
	return st, period, nil
}

func (s *Service) category(value string) string {
	normalized := ledger.NormalizeName(value)
	if normalized == "" {
		return s.defaultCategory
	}
	return normalized
}
