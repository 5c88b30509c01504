package fare

import (
	"context"
	"fmt"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
)

const serviceName = "fare-engine"

// Service is the fare engine facade: trip estimation, itemized pricing and
// market comparison against the active tariff revision.
type Service struct {
	estimator  Estimator
	calculator *Calculator
	comparator *Comparator
	tariffs    *tariff.Store

	log logger.Logger
}

func NewService(estimator Estimator, tariffs *tariff.Store, log logger.Logger) *Service {
	return &Service{
		estimator:  estimator,
		calculator: NewCalculator(),
		comparator: NewComparator(),
		tariffs:    tariffs,
		log:        log,
	}
}

// Estimate quotes a trip between two points. The whole quote is computed
// against a single tariff snapshot, so a concurrent reload can never mix
// revisions inside one response.
func (s *Service) Estimate(ctx context.Context, pickup, dropoff models.Coordinate, class types.VehicleClass) (*models.FareEstimate, error) {
	ctx = wrap.WithAction(ctx, types.ActionFareEstimate)

	if !pickup.Valid() {
		return nil, fmt.Errorf("%w: pickup %+v", types.ErrInvalidCoordinate, pickup)
	}
	if !dropoff.Valid() {
		return nil, fmt.Errorf("%w: dropoff %+v", types.ErrInvalidCoordinate, dropoff)
	}

	table := s.tariffs.Current()
	km, min := s.estimator.Estimate(pickup, dropoff)

	itemization, err := s.calculator.Compute(km, min, class, table)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	competitors, err := s.comparator.Compare(km, min, table)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.RecordFareEstimate(serviceName, string(class), nil)
	s.log.Debug(ctx, "fare estimated",
		"vehicle_class", class,
		"distance_km", km,
		"duration_min", min,
		"total", itemization.Total.String(),
		"tariff_version", table.Version,
	)

	return &models.FareEstimate{
		OurFare:             itemization,
		CompetitorEstimates: competitors,
	}, nil
}

// Quote prices a trip whose distance and duration are already known. Booking
// uses it to rebind the fare at confirmation time against the tariff revision
// active at that moment.
func (s *Service) Quote(ctx context.Context, distanceKm float64, durationMin int, class types.VehicleClass) (*models.FareItemization, string, error) {
	table := s.tariffs.Current()

	itemization, err := s.calculator.Compute(distanceKm, durationMin, class, table)
	if err != nil {
		return nil, "", wrap.Error(ctx, err)
	}

	return itemization, table.Version, nil
}

// EstimateTrip exposes the distance/duration estimator for callers that need
// the geometry without a price.
func (s *Service) EstimateTrip(pickup, dropoff models.Coordinate) (float64, int) {
	return s.estimator.Estimate(pickup, dropoff)
}

// TariffVersion returns the active tariff revision identifier.
func (s *Service) TariffVersion() string {
	return s.tariffs.Version()
}
