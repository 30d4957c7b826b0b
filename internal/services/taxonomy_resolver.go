package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/metrics"
)

type TaxonomyResolverInterface interface {
	// ResolveOrCreate returns the item named name, creating it when missing.
	// created reports whether this call inserted the row.
	ResolveOrCreate(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (item *entities.TaxonomyItem, created bool, err error)
}

type TaxonomyResolver struct {
	repo    repositories.TaxonomyRepositoryInterface
	metrics *metrics.TaxonomyMetrics
	logger  *zap.Logger
}

func NewTaxonomyResolver(repo repositories.TaxonomyRepositoryInterface, m *metrics.TaxonomyMetrics, logger *zap.Logger) TaxonomyResolverInterface {
	return &TaxonomyResolver{repo: repo, metrics: m, logger: logger}
}

// ResolveOrCreate relies on the unique name constraint. When the insert loses
// a race it re-reads exactly once and reports ErrConflict if the row is still
// not visible.
func (r *TaxonomyResolver) ResolveOrCreate(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (*entities.TaxonomyItem, bool, error) {
	item, err := r.repo.FindByName(ctx, tx, kind, name)
	if err == nil {
		r.metrics.RecordResolution(string(kind), metrics.OutcomeReused)
		return item, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	id, err := r.repo.Create(ctx, tx, kind, name)
	if err == nil {
		r.metrics.RecordResolution(string(kind), metrics.OutcomeCreated)
		r.logger.Info("taxonomy item created", zap.String("kind", string(kind)), zap.String("name", name), zap.Uint64("id", id))
		return &entities.TaxonomyItem{ID: id, Kind: kind, Name: name}, true, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, false, err
	}

	r.metrics.RecordResolution(string(kind), metrics.OutcomeRetried)
	r.logger.Debug("taxonomy insert lost a race, re-reading", zap.String("kind", string(kind)), zap.String("name", name))

	item, err = r.repo.FindByName(ctx, tx, kind, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("%s %q could not be resolved: %w", kind, name, apperrors.ErrConflict)
		}
		return nil, false, err
	}
	return item, false, nil
}
