package identity

import (
	"regexp"
	"testing"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9]+\.[a-z0-9]+\d{4}@rideshare\.com$`)

func TestNewPassenger(t *testing.T) {
	p := NewPassenger("Juan", "Dela Cruz", "0917-000-0000")

	if p.ID == "" {
		t.Error("id should be set")
	}
	if !emailPattern.MatchString(p.Email) {
		t.Errorf("email %q does not match expected shape", p.Email)
	}
	if matched, _ := regexp.MatchString(`^pass\d{4}$`, p.Credential); !matched {
		t.Errorf("credential %q does not match expected shape", p.Credential)
	}

	other := NewPassenger("Juan", "Dela Cruz", "0917-000-0000")
	if other.ID == p.ID {
		t.Error("ids should be unique")
	}
}

func TestNewDriver(t *testing.T) {
	v := RandomVehicle()
	d := NewDriver("Maria", "Santos", "0918-111-1111", v, 4)

	if d.AvailableSeats != 4 {
		t.Errorf("seat capacity = %d, want 4", d.AvailableSeats)
	}
	if d.Vehicle != v {
		t.Errorf("vehicle = %+v, want %+v", d.Vehicle, v)
	}
	if !emailPattern.MatchString(d.Email) {
		t.Errorf("email %q does not match expected shape", d.Email)
	}
}

func TestRandomVehicle(t *testing.T) {
	v := RandomVehicle()
	if v.LicensePlate == "" || v.Model == "" || v.Color == "" {
		t.Errorf("vehicle has empty fields: %+v", v)
	}
	if matched, _ := regexp.MatchString(`^[A-Z]\d{4}$`, v.LicensePlate); !matched {
		t.Errorf("license plate %q does not match expected shape", v.LicensePlate)
	}
}
