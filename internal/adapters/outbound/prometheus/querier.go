package prometheus

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// Querier implements domain.MetricsQuerier against the Prometheus HTTP API.
type Querier struct {
	api v1.API
	now func() time.Time
}

func New(address string) (*Querier, error) {
	client, err := api.NewClient(api.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client for %s: %w", address, err)
	}
	return &Querier{api: v1.NewAPI(client), now: time.Now}, nil
}

// QueryScalar runs an instant query and returns the first sample. Empty
// results and NaN samples report ok=false.
func (q *Querier) QueryScalar(ctx context.Context, query string) (float64, bool, error) {
	value, _, err := q.api.Query(ctx, query, q.now())
	if err != nil {
		return 0, false, fmt.Errorf("querying prometheus: %w", err)
	}

	v, ok := firstSample(value)
	if !ok || math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}

func firstSample(value model.Value) (float64, bool) {
	switch v := value.(type) {
	case model.Vector:
		if len(v) == 0 {
			return 0, false
		}
		return float64(v[0].Value), true
	case *model.Scalar:
		if v == nil {
			return 0, false
		}
		return float64(v.Value), true
	case model.Matrix:
		for _, stream := range v {
			if n := len(stream.Values); n > 0 {
				return float64(stream.Values[n-1].Value), true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
