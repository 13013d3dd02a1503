// Package booking holds the static booking table loaded once at startup.
package booking

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"

	"github.com/pkg/errors"

	"concierge/internal/domain"
)

// sampleLimit caps how many booking numbers the not-found hint lists.
const sampleLimit = 5

// Store is a read-only mapping from booking number to booking record.
type Store struct {
	bookings map[string]domain.Booking
}

// LoadStore reads the booking table from a JSON file mapping booking
// numbers to records.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read bookings file %s", path)
	}
	var bookings map[string]domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, errors.Wrapf(err, "invalid bookings file %s", path)
	}
	slog.Info("loaded bookings", "count", len(bookings), "path", path)
	return &Store{bookings: bookings}, nil
}

// NewStore wraps an already-built table. Used by tests.
func NewStore(bookings map[string]domain.Booking) *Store {
	return &Store{bookings: bookings}
}

// Get returns the record for the given booking number.
func (s *Store) Get(number string) (domain.Booking, bool) {
	b, ok := s.bookings[number]
	return b, ok
}

// SampleNumbers returns up to five booking numbers in sorted order, used as
// a hint when a lookup misses.
func (s *Store) SampleNumbers() []string {
	numbers := make([]string, 0, len(s.bookings))
	for n := range s.bookings {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	if len(numbers) > sampleLimit {
		numbers = numbers[:sampleLimit]
	}
	return numbers
}

// Len returns the number of loaded bookings.
func (s *Store) Len() int { return len(s.bookings) }
