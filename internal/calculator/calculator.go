package calculator

import (
	"context"
	"errors"
	"fmt"
	"pharmacy-distance/internal/distance"
	"pharmacy-distance/internal/models"
	"sort"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const (
	// BatchSize is the Distance Matrix limit on destinations per request.
	BatchSize = 25
	// MaxResults is how many pharmacies are kept after ranking.
	MaxResults = 5
)

// ErrDistanceFetch wraps any failure while querying a batch.
var ErrDistanceFetch = errors.New("error fetching distance matrix")

type ProgressCallback func(current, total int, msg string)

type Ranker struct {
	Matrix     distance.Matrix
	Units      maps.Units
	Logger     *zap.SugaredLogger
	OnProgress ProgressCallback
}

// Nearest ranks candidates by travel distance from origin and returns the
// closest MaxResults. Batches are queried one after another; if any batch
// fails nothing is returned.
func (r *Ranker) Nearest(ctx context.Context, candidates []models.Pharmacy, origin string) ([]models.RankedPharmacy, error) {
	if r.Matrix == nil {
		return nil, distance.ErrMissingAPIKey
	}
	if len(candidates) == 0 {
		return []models.RankedPharmacy{}, nil
	}

	batches := Batch(candidates, BatchSize)
	ranked := make([]models.RankedPharmacy, 0, len(candidates))

	for i, batch := range batches {
		results, err := r.queryBatch(ctx, batch, origin)
		if err != nil {
			r.logger().Errorw("distance batch failed", "batch", i, "batches", len(batches), "error", err)
			return nil, fmt.Errorf("%w: batch %d of %d: %v", ErrDistanceFetch, i+1, len(batches), err)
		}
		ranked = append(ranked, results...)

		r.logger().Debugw("distance batch done", "batch", i, "size", len(batch))
		if r.OnProgress != nil {
			r.OnProgress(i+1, len(batches), "")
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceValue < ranked[j].DistanceValue
	})
	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked, nil
}

func (r *Ranker) queryBatch(ctx context.Context, batch []models.Pharmacy, origin string) ([]models.RankedPharmacy, error) {
	destinations := make([]string, len(batch))
	for i, p := range batch {
		destinations[i] = p.FormattedAddress
	}

	resp, err := r.Matrix.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: destinations,
		Units:        r.Units,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Rows) != 1 {
		return nil, fmt.Errorf("expected 1 row in response")
	}
	elements := resp.Rows[0].Elements
	if len(elements) != len(batch) {
		return nil, fmt.Errorf("expected %d elements, got %d", len(batch), len(elements))
	}

	results := make([]models.RankedPharmacy, len(batch))
	for i, e := range elements {
		if e == nil || e.Status != "OK" {
			status := "missing"
			if e != nil {
				status = e.Status
			}
			return nil, fmt.Errorf("destination %q: status %s", destinations[i], status)
		}
		p := batch[i]
		results[i] = models.RankedPharmacy{
			Name:          p.Name,
			Address:       p.Address,
			DEA:           p.DEA,
			NPI:           p.NPI,
			Distance:      e.Distance.HumanReadable,
			DistanceValue: e.Distance.Meters,
		}
	}
	return results, nil
}

func (r *Ranker) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

// Batch splits items into contiguous groups of at most size, keeping order.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
