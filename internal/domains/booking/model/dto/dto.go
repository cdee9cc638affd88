package dto

import (
	"time"

	"voyage/internal/domains/booking/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateBookingRequest struct {
	PlaceID      string    `json:"place_id"      validate:"required"`
	FullName     string    `json:"full_name"     validate:"required,max=100"`
	Email        string    `json:"email"         validate:"required,email,max=100"`
	Phone        string    `json:"phone"         validate:"required,max=20"`
	ArrivalDate  string    `json:"arrival_date"  validate:"required,datetime=2006-01-02"`
	Price        *float64  `json:"price"         validate:"omitempty,gt=0"`
	PackageTitle string    `json:"package_title" validate:"omitempty,max=200"`
	Adults       int       `json:"adults"        validate:"required,gte=1"`
	Children     int       `json:"children"      validate:"gte=0"`
	ChildrenAges ChildAges `json:"children_ages" swaggertype:"array,integer" validate:"omitempty,dive,gte=0,lte=17"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"        validate:"omitempty,oneof=pending approved cancelled"`
}

// Place is the part of a place a booking snapshots.
type Place struct {
	Title    string
	Subtitle string
	Price    float64
}

func (c *CreateBookingRequest) ToModel(place Place, userID, user string) (model.Booking, error) {
	arrival, err := time.Parse(model.DateFormat, c.ArrivalDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	price := place.Price
	if c.Price != nil {
		price = *c.Price
	}

	packageTitle := c.PackageTitle
	if packageTitle == "" {
		packageTitle = place.Subtitle
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	var owner *string
	if userID != "" {
		owner = &userID
	}

	ages := pq.Int64Array(c.ChildrenAges)
	if ages == nil {
		ages = pq.Int64Array{}
	}

	return model.Booking{
		ID:           uuid.NewString(),
		PlaceID:      c.PlaceID,
		UserID:       owner,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		ArrivalDate:  arrival,
		Price:        price,
		PackageTitle: packageTitle,
		Adults:       c.Adults,
		Children:     c.Children,
		ChildrenAges: ages,
		Notes:        c.Notes,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateBookingRequest is a partial update; nil fields are left untouched.
type UpdateBookingRequest struct {
	FullName     *string    `db:"full_name"     json:"full_name"     validate:"omitempty,max=100"`
	Email        *string    `db:"email"         json:"email"         validate:"omitempty,email,max=100"`
	Phone        *string    `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	ArrivalDate  *string    `json:"arrival_date"  validate:"omitempty,datetime=2006-01-02"`
	Price        *float64   `db:"price"         json:"price"         validate:"omitempty,gt=0"`
	PackageTitle *string    `db:"package_title" json:"package_title" validate:"omitempty,max=200"`
	Adults       *int       `db:"adults"        json:"adults"        validate:"omitempty,gte=1"`
	Children     *int       `db:"children"      json:"children"      validate:"omitempty,gte=0"`
	ChildrenAges *ChildAges `json:"children_ages" swaggertype:"array,integer" validate:"omitempty,dive,gte=0,lte=17"`
	Notes        *string    `db:"notes"         json:"notes"`
	Status       *string    `db:"status"        json:"status"        validate:"omitempty,oneof=pending approved cancelled"`
}

// Fields maps the provided values to their columns, modification metadata included.
func (u *UpdateBookingRequest) Fields(user string) (map[string]any, error) {
	fields := shared.TransformFields(*u, user)

	if u.ArrivalDate != nil {
		arrival, err := time.Parse(model.DateFormat, *u.ArrivalDate)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		fields[model.FieldArrivalDate] = arrival
	}

	if u.ChildrenAges != nil {
		ages := pq.Int64Array(*u.ChildrenAges)
		if ages == nil {
			ages = pq.Int64Array{}
		}

		fields[model.FieldChildrenAges] = ages
	}

	return fields, nil
}

func (u *UpdateBookingRequest) Empty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil && u.ArrivalDate == nil &&
		u.Price == nil && u.PackageTitle == nil && u.Adults == nil && u.Children == nil &&
		u.ChildrenAges == nil && u.Notes == nil && u.Status == nil
}

type BookingResponse struct {
	ID           string  `json:"id"`
	PlaceID      string  `json:"place_id"`
	UserID       *string `json:"user_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	ArrivalDate  string  `json:"arrival_date"`
	Price        float64 `json:"price"`
	PackageTitle string  `json:"package_title"`
	Adults       int     `json:"adults"`
	Children     int     `json:"children"`
	ChildrenAges []int64 `json:"children_ages"`
	Notes        string  `json:"notes"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.PlaceID = mod.PlaceID
	r.UserID = mod.UserID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.ArrivalDate = mod.ArrivalDate.Format(model.DateFormat)
	r.Price = mod.Price
	r.PackageTitle = mod.PackageTitle
	r.Adults = mod.Adults
	r.Children = mod.Children
	r.ChildrenAges = []int64(mod.ChildrenAges)
	r.Notes = mod.Notes
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)

	if r.ChildrenAges == nil {
		r.ChildrenAges = []int64{}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
