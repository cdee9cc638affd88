package model

import (
	"time"

	"voyage/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldPlaceID      = "place_id"
	FieldUserID       = "user_id"
	FieldFullName     = "full_name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldArrivalDate  = "arrival_date"
	FieldPrice        = "price"
	FieldPackageTitle = "package_title"
	FieldAdults       = "adults"
	FieldChildren     = "children"
	FieldChildrenAges = "children_ages"
	FieldNotes        = "notes"
	FieldStatus       = "status"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

const DateFormat = "2006-01-02"

type Booking struct {
	ID           string        `db:"id"`
	PlaceID      string        `db:"place_id"`
	UserID       *string       `db:"user_id"`
	FullName     string        `db:"full_name"`
	Email        string        `db:"email"`
	Phone        string        `db:"phone"`
	ArrivalDate  time.Time     `db:"arrival_date"`
	Price        float64       `db:"price"`
	PackageTitle string        `db:"package_title"`
	Adults       int           `db:"adults"`
	Children     int           `db:"children"`
	ChildrenAges pq.Int64Array `db:"children_ages"`
	Notes        string        `db:"notes"`
	Status       string        `db:"status"`
	model.Metadata
}
