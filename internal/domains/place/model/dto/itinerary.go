package dto

import (
	"fmt"
	"regexp"
	"strconv"

	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/shared/failure"

	"github.com/google/uuid"
)

// dayPhotoField matches the legacy "day<N>_<anything>" part names.
var dayPhotoField = regexp.MustCompile(`^day(\d+)_`)

// ItineraryDayInput is one day of an incoming itinerary. PhotoFields names the
// multipart parts holding the day's photos; Photos holds the opened uploads.
type ItineraryDayInput struct {
	Day         int                  `json:"day"         validate:"required,gte=1"`
	Title       string               `json:"title"       validate:"max=200"`
	Description string               `json:"description"`
	PhotoFields []string             `json:"photos"`
	Photos      []*attachment.Upload `json:"-"           validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (i *ItineraryDayInput) ToModel(placeID string, user string) model.ItineraryDay {
	return model.ItineraryDay{
		ID:          uuid.NewString(),
		PlaceID:     placeID,
		DayNumber:   i.Day,
		Title:       i.Title,
		Description: i.Description,
		Metadata:    metadata(user),
	}
}

// ValidateItinerary rejects day numbers below one and duplicates.
func ValidateItinerary(days []ItineraryDayInput) error {
	seen := make(map[int]bool, len(days))

	for idx, day := range days {
		field := fmt.Sprintf("itinerary[%d].day", idx)

		if day.Day < 1 {
			msg := field + " must be greater than or equal to 1"

			return failure.Validation(msg, map[string]any{field: msg}) //nolint:wrapcheck
		}

		if seen[day.Day] {
			msg := fmt.Sprintf("day %d appears more than once in itinerary", day.Day)

			return failure.Validation(msg, map[string]any{field: msg}) //nolint:wrapcheck
		}

		seen[day.Day] = true
	}

	return nil
}

// DayOfPhotoField returns N for a part named "day<N>_*".
func DayOfPhotoField(field string) (int, bool) {
	match := dayPhotoField.FindStringSubmatch(field)
	if match == nil {
		return 0, false
	}

	day, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return day, true
}
