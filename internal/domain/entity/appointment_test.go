package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentEndTime(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appt := Appointment{StartTime: start, DurationMinutes: 30}

	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), appt.EndTime())
}

func TestAppointmentOverlaps(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	booked := Appointment{StartTime: at(10, 0), DurationMinutes: 30}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", at(10, 0), at(10, 30), true},
		{"starts inside existing", at(10, 15), at(10, 45), true},
		{"ends inside existing", at(9, 45), at(10, 15), true},
		{"fully contains existing", at(9, 0), at(11, 0), true},
		{"contained by existing", at(10, 10), at(10, 20), true},
		{"back to back after", at(10, 30), at(11, 0), false},
		{"back to back before", at(9, 30), at(10, 0), false},
		{"disjoint later", at(12, 0), at(12, 30), false},
		{"disjoint earlier", at(8, 0), at(8, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.start, tt.end))
		})
	}
}

func TestDoctorIsActive(t *testing.T) {
	active := true
	inactive := false

	assert.True(t, (&Doctor{Active: &active}).IsActive())
	assert.False(t, (&Doctor{Active: &inactive}).IsActive())
	assert.False(t, (&Doctor{}).IsActive())
}
