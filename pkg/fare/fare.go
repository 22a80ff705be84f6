/*
Package fare computes trip fares. The base fare depends only on distance;
group and final fares scale the base fare by the number of seats taken.
Amounts are whole currency units.
*/
package fare

import (
	"fmt"
	"math"

	"rideshare/pkg/apperrors"
)

const (
	flagDown     = 50 // boarding component
	perKilometer = 10
)

// BaseFare returns the per-seat fare for a trip of the given distance.
// Fractional distances round half away from zero. Negative distance is an
// input validation error.
func BaseFare(distanceKm float64) (int64, error) {
	if distanceKm < 0 {
		return 0, fmt.Errorf("%w: distance must be >= 0, got %v", apperrors.ErrInvalidInput, distanceKm)
	}
	return flagDown + int64(math.Round(distanceKm*perKilometer)), nil
}

// GroupFare is the fare owed by a single passenger group.
func GroupFare(baseFare int64, groupSize int) int64 {
	return baseFare * int64(groupSize)
}
