package hospital

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

const earthRadiusKm = 6371.0

type Service struct {
	hospitals Repository
}

func NewService(hospitals Repository) *Service {
	return &Service{hospitals: hospitals}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.hospitals.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.hospitals.List(ctx, limit, offset)
}

// Nearby returns the directory sorted by great-circle distance from the
// origin. limit caps the result; limit <= 0 returns everything.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, limit int) ([]*NearbyHospital, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("longitude must be between -180 and 180")
	}

	all, err := s.hospitals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*NearbyHospital, 0, len(all))
	for _, h := range all {
		out = append(out, &NearbyHospital{
			Hospital:   *h,
			DistanceKm: haversineKm(lat, lng, h.Latitude, h.Longitude),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// haversineKm computes the great-circle distance between two points
// on a spherical earth.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
