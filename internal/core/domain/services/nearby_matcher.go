package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/recipient"
)

// ErrNoNearbyDeliveries is returned when candidates existed but none had
// usable recipient coordinates. Distinct from the "agent has no orders at
// all" failure raised by the query layer before ranking starts.
var ErrNoNearbyDeliveries = errors.New("no candidate deliveries have usable coordinates")

const metersPerKilometer = 1000.0

// Candidate pairs an order with its recipient for nearby ranking.
// The recipient supplies the destination coordinates.
type Candidate struct {
	Order     *order.Order
	Recipient *recipient.Recipient
}

// RankedDelivery is one entry of the nearby-delivery ranking.
// DistanceKm is the numeric great-circle distance in kilometers rounded to
// two decimals; DistanceLabel is its presentation form, e.g. "2.69 km".
// Sorting always uses the numeric value, never the label.
type RankedDelivery struct {
	Order         *order.Order
	DistanceKm    float64
	DistanceLabel string
}

// NearbyMatcher ranks a delivery agent's open orders by great-circle distance
// from an origin coordinate.
//
// Filtering rules:
//   - Orders already Delivered are never candidates (terminal orders are not
//     "nearby work").
//   - Candidates whose recipient has no stored coordinates are skipped and
//     logged; a missing coordinate is a data-quality gap, not a request failure.
//
// Ties on equal distance preserve the relative order in which candidates were
// supplied (stable sort); no secondary key is applied.
type NearbyMatcher struct {
	logger *slog.Logger
}

// NewNearbyMatcher creates a matcher that reports skipped candidates through
// the given logger.
func NewNearbyMatcher(logger *slog.Logger) NearbyMatcher {
	return NearbyMatcher{
		logger: logger.With("component", "nearby_matcher"),
	}
}

// Rank computes the ascending distance ranking of the candidates from origin.
//
// Returns ErrNoNearbyDeliveries when no candidate survives filtering, i.e.
// every non-terminal order lacked recipient coordinates.
func (m NearbyMatcher) Rank(origin kernel.GeoPoint, candidates []Candidate) ([]RankedDelivery, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedDelivery, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.Order.Validate(); err != nil {
			return nil, err
		}

		if candidate.Order.Status() == order.Delivered {
			continue
		}

		if candidate.Recipient == nil || !candidate.Recipient.HasLocation() {
			m.logger.Warn("candidate skipped: recipient has no coordinates",
				"order_id", candidate.Order.ID().String(),
				"tracking_code", candidate.Order.TrackingCode(),
			)
			continue
		}

		meters, err := origin.DistanceTo(*candidate.Recipient.Location())
		if err != nil {
			return nil, err
		}

		km := roundToTwoDecimals(meters / metersPerKilometer)
		ranked = append(ranked, RankedDelivery{
			Order:         candidate.Order,
			DistanceKm:    km,
			DistanceLabel: fmt.Sprintf("%.2f km", km),
		})
	}

	if len(ranked) == 0 {
		return nil, ErrNoNearbyDeliveries
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked, nil
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
