// Package identity is the registration collaborator: it mints passenger and
// driver records with stable ids and generated sign-in credentials. The
// accounting core only ever sees the ids.
package identity

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"rideshare/pkg/models"
)

var (
	carModels = []string{"Toyota", "Honda", "Ford", "Tesla", "Chevrolet"}
	carColors = []string{"Red", "Blue", "Black", "White", "Gray"}
)

// NewPassenger builds a passenger record with a generated email and
// credential.
func NewPassenger(firstName, lastName, contact string) *models.Passenger {
	return &models.Passenger{
		ID:         uuid.NewString(),
		FirstName:  firstName,
		LastName:   lastName,
		Contact:    contact,
		Email:      generateEmail(firstName, lastName),
		Credential: generateCredential(),
		CreatedAt:  time.Now(),
	}
}

// NewDriver builds a driver record with the given vehicle and seat capacity.
func NewDriver(firstName, lastName, contact string, vehicle models.Vehicle, seatCapacity int) *models.Driver {
	return &models.Driver{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Contact:        contact,
		Email:          generateEmail(firstName, lastName),
		Credential:     generateCredential(),
		Vehicle:        vehicle,
		AvailableSeats: seatCapacity,
		CreatedAt:      time.Now(),
	}
}

// RandomVehicle generates a plate, model and color for driver signup.
func RandomVehicle() models.Vehicle {
	return models.Vehicle{
		LicensePlate: fmt.Sprintf("%c%04d", 'A'+rand.Intn(26), rand.Intn(10000)),
		Model:        carModels[rand.Intn(len(carModels))],
		Color:        carColors[rand.Intn(len(carColors))],
	}
}

func generateEmail(firstName, lastName string) string {
	return fmt.Sprintf("%s.%s%04d@rideshare.com",
		cleanName(firstName), cleanName(lastName), rand.Intn(10000))
}

func generateCredential() string {
	return fmt.Sprintf("pass%04d", rand.Intn(10000))
}

// cleanName keeps only lowercase letters and digits.
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
