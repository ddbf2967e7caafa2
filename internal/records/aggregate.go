package records

import (
	"context"

	"go.uber.org/zap"

	"github.com/rogue-resident/rogue-docs/internal/logger"
	"github.com/rogue-resident/rogue-docs/internal/model"
)

// Aggregator collects the records of several categories.
type Aggregator struct {
	store Store
	log   *zap.Logger
}

// NewAggregator returns an aggregator over store.
func NewAggregator(store Store, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, log: logger.OrNop(log)}
}

// Aggregate loads every category in order. Repeated names keep their
// first position. A category whose store read fails is treated as empty.
// Only context cancellation is returned as an error.
func (a *Aggregator) Aggregate(ctx context.Context, categories []string) (model.Dataset, error) {
	var ds model.Dataset
	seen := make(map[string]bool, len(categories))
	for _, name := range categories {
		if seen[name] {
			continue
		}
		seen[name] = true

		systems, err := a.store.GetAll(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return model.Dataset{}, ctxErr
			}
			a.log.Warn("category unavailable, treating as empty", zap.String("category", name), zap.Error(err))
			systems = model.Ordered[model.SystemRecord]{}
		} else if systems.Len() == 0 {
			a.log.Debug("category has no records", zap.String("category", name))
		}
		ds.Categories = append(ds.Categories, model.CategoryData{
			Category: model.Category(name),
			Systems:  systems,
		})
	}
	return ds, nil
}
