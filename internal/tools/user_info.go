package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"concierge/internal/booking"
	"concierge/internal/domain"
)

// LookupError describes a failed booking lookup as data rather than a
// propagated error, so it renders through the same formatting path as a
// successful record.
type LookupError struct {
	Message string
	Hint    string
	Format  string
	Example string
	Details string
}

// LookupResult holds either a booking record or a lookup error.
type LookupResult struct {
	Booking *domain.Booking
	Err     *LookupError
}

// UserInfo resolves booking numbers to guest records and feeds the guest
// context into the vector index as a side effect.
type UserInfo struct {
	bookings *booking.Store
	search   *Search
}

func NewUserInfo(bookings *booking.Store, search *Search) *UserInfo {
	return &UserInfo{bookings: bookings, search: search}
}

func (t *UserInfo) Name() string { return "GetUserInfo" }

func (t *UserInfo) Description() string {
	return "Useful for getting guest information using their booking number. Input should be a booking number (e.g., 'BK123')."
}

func (t *UserInfo) Parameters() string {
	return `{"type":"object","properties":{"booking_number":{"type":"string","description":"The guest's booking number, e.g. BK001"}},"required":["booking_number"]}`
}

// Run resolves a booking number and returns the formatted result.
func (t *UserInfo) Run(ctx context.Context, input string) (string, error) {
	number := stringArg(input, "booking_number")
	return FormatUserInfo(t.Lookup(ctx, number)), nil
}

// Lookup fetches the booking record for the given number. On success the
// formatted guest context is also inserted into the vector index tagged
// source=user_info, so later retrieval calls see guest-specific facts
// alongside general guide content.
func (t *UserInfo) Lookup(ctx context.Context, number string) LookupResult {
	if number == "" {
		return LookupResult{Err: &LookupError{
			Message: "Please provide a booking number. Format: BKxxx (e.g., BK001, BK002)",
			Example: "Example booking numbers: " + strings.Join(t.bookings.SampleNumbers(), ", "),
		}}
	}

	record, ok := t.bookings.Get(number)
	if !ok {
		return LookupResult{Err: &LookupError{
			Message: fmt.Sprintf("Booking number '%s' not found. Please check your booking number.", number),
			Hint:    "Available booking numbers for testing: " + strings.Join(t.bookings.SampleNumbers(), ", "),
			Format:  "Booking numbers should be in format BKxxx (e.g., BK001)",
		}}
	}

	result := LookupResult{Booking: &record}
	guestContext := FormatUserInfo(result)
	if err := t.search.AddToStore(ctx, guestContext, domain.SourceUserInfo, "user_info:"+number); err != nil {
		slog.Error("failed to index guest context", "booking", number, "error", err)
		return LookupResult{Err: &LookupError{
			Message: "Error fetching user information",
			Details: err.Error(),
			Hint:    "Please try with a valid booking number (e.g., BK001)",
		}}
	}
	return result
}

// FormatUserInfo renders a lookup result as human-readable text. It is pure:
// no side effects, total over both success and error results.
func FormatUserInfo(result LookupResult) string {
	if result.Err != nil {
		lines := []string{"Error: " + result.Err.Message}
		if result.Err.Hint != "" {
			lines = append(lines, "Hint: "+result.Err.Hint)
		}
		if result.Err.Format != "" {
			lines = append(lines, "Format: "+result.Err.Format)
		}
		if result.Err.Example != "" {
			lines = append(lines, result.Err.Example)
		}
		if result.Err.Details != "" {
			lines = append(lines, "Details: "+result.Err.Details)
		}
		return strings.Join(lines, "\n")
	}

	b := result.Booking
	children := "No"
	if b.Preferences.Children {
		children = "Yes"
	}
	return fmt.Sprintf(`Guest Information:
- Name: %s (Age: %d)
- Room: %s
- Check-in: %s
- Check-out: %s

Room Details:
- Type: %s
- Capacity: %d people
- Children: %s

Preferences:
- Dietary: %s
- Special Requests: %s
- Preferred Activities: %s`,
		b.GuestName, b.GuestAge,
		b.RoomNumber,
		b.CheckIn,
		b.CheckOut,
		b.Preferences.RoomType,
		b.Preferences.Capacity,
		children,
		b.Preferences.Dietary,
		strings.Join(b.Preferences.SpecialRequests, ", "),
		strings.Join(b.Preferences.PreferredActivities, ", "))
}
