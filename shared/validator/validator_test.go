package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/attachment"
	"voyage/shared/failure"
	"voyage/shared/validator"
)

type bookingRequest struct {
	PlaceID   string `json:"place_id"     validate:"required"`
	Email     string `json:"email"        validate:"required,email"`
	Adults    int    `json:"adults"       validate:"gte=1,lte=20"`
	Arrival   string `json:"arrival_date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status"       validate:"omitempty,oneof=pending approved cancelled"`
	Password  string `json:"-"`
	NewPasswd string `json:"new_password" validate:"omitempty,nefield=Password"`
}

type itemForm struct {
	Title  string               `form:"title"  validate:"required,max=50"`
	Image  *attachment.Upload   `form:"image"  validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	Photos []*attachment.Upload `form:"photos" validate:"omitempty,dive,mimetypes=image/*,maxfilesize=0.5"`
}

func validBooking() bookingRequest {
	return bookingRequest{PlaceID: "p-1", Email: "ana@example.com", Adults: 2, Arrival: "2026-12-01"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*bookingRequest)
		field   string
		message string
	}{
		{name: "valid", mutate: func(*bookingRequest) {}},
		{name: "missing place", mutate: func(b *bookingRequest) { b.PlaceID = "" }, field: "place_id", message: "place_id is required"},
		{name: "bad email", mutate: func(b *bookingRequest) { b.Email = "ana" }, field: "email", message: "email must be a valid email address"},
		{name: "too many adults", mutate: func(b *bookingRequest) { b.Adults = 21 }, field: "adults", message: "adults must be less than or equal to 20"},
		{name: "bad date", mutate: func(b *bookingRequest) { b.Arrival = "01/12/2026" }, field: "arrival_date", message: "arrival_date must be a date formatted as 2006-01-02"},
		{name: "unknown status", mutate: func(b *bookingRequest) { b.Status = "lost" }, field: "status", message: "status must be one of pending approved cancelled"},
		{
			name: "same password",
			mutate: func(b *bookingRequest) {
				b.Password = "secret"
				b.NewPasswd = "secret"
			},
			field: "new_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.field == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, failure.GetDetails(err), tt.field)

			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestValidateStruct_DetailsEveryField(t *testing.T) {
	err := validator.ValidateStruct(&bookingRequest{Adults: 1, Arrival: "2026-12-01"})

	require.Error(t, err)
	assert.Equal(t, map[string]any{
		"place_id": "place_id is required",
		"email":    "email is required",
	}, failure.GetDetails(err))
}

func TestValidateStruct_Uploads(t *testing.T) {
	png := func(size int64) *attachment.Upload {
		return &attachment.Upload{Name: "a.png", ContentType: "image/png", Size: size, Body: strings.NewReader("x")}
	}

	tests := []struct {
		name  string
		form  itemForm
		field string
	}{
		{name: "no image", form: itemForm{Title: "Kayak"}},
		{name: "png within size", form: itemForm{Title: "Kayak", Image: png(1 << 20)}},
		{
			name:  "content type parameters are ignored",
			form:  itemForm{Title: "Kayak", Image: &attachment.Upload{ContentType: "Image/JPEG; charset=binary", Size: 10}},
			field: "",
		},
		{name: "too large", form: itemForm{Title: "Kayak", Image: png(1<<20 + 1)}, field: "image"},
		{name: "not an image", form: itemForm{Title: "Kayak", Image: &attachment.Upload{ContentType: "application/pdf", Size: 10}}, field: "image"},
		{name: "family wildcard", form: itemForm{Title: "Kayak", Photos: []*attachment.Upload{{ContentType: "image/webp", Size: 10}}}},
		{name: "wildcard rejects other families", form: itemForm{Title: "Kayak", Photos: []*attachment.Upload{{ContentType: "text/plain", Size: 10}}}, field: "photos[0]"},
		{name: "title too long", form: itemForm{Title: strings.Repeat("a", 51)}, field: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.form)
			if tt.field == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, failure.GetDetails(err), tt.field)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		var req bookingRequest

		err := validator.Validate(strings.NewReader(`{"place_id":"p-1","email":"ana@example.com","adults":2,"arrival_date":"2026-12-01"}`), &req)

		require.NoError(t, err)
		assert.Equal(t, "p-1", req.PlaceID)
	})

	t.Run("malformed json", func(t *testing.T) {
		var req bookingRequest

		err := validator.Validate(strings.NewReader(`{"place_id":`), &req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Empty(t, failure.GetDetails(err))
	})

	t.Run("rule failure", func(t *testing.T) {
		var req bookingRequest

		err := validator.Validate(strings.NewReader(`{"email":"ana@example.com","adults":0,"arrival_date":"2026-12-01"}`), &req)

		require.Error(t, err)
		assert.Contains(t, failure.GetDetails(err), "adults")
	})
}

func TestRequirePresent(t *testing.T) {
	title := "Lisbon"
	empty := ""

	assert.NoError(t, validator.RequirePresent(map[string]any{"title": &title}))

	err := validator.RequirePresent(map[string]any{
		"title":   &title,
		"content": &empty,
		"author":  (*string)(nil),
	})

	require.Error(t, err)
	assert.Equal(t, "author is required", err.Error())
	assert.Equal(t, map[string]any{
		"author":  "author is required",
		"content": "content is required",
	}, failure.GetDetails(err))
}
