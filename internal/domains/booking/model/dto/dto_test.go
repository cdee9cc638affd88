package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/domains/booking/model"
	"voyage/internal/domains/booking/model/dto"
	"voyage/shared/validator"
)

func TestChildAges_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    dto.ChildAges
		wantErr bool
	}{
		{name: "list", payload: `{"children_ages":[5,7]}`, want: dto.ChildAges{5, 7}},
		{name: "string encoded list", payload: `{"children_ages":"[5,7]"}`, want: dto.ChildAges{5, 7}},
		{name: "comma separated", payload: `{"children_ages":"5, 7"}`, want: dto.ChildAges{5, 7}},
		{name: "empty string", payload: `{"children_ages":""}`, want: dto.ChildAges{}},
		{name: "null", payload: `{"children_ages":null}`, want: nil},
		{name: "garbage", payload: `{"children_ages":"five"}`, wantErr: true},
		{name: "wrong type", payload: `{"children_ages":{"a":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{}
			err := json.Unmarshal([]byte(tt.payload), &req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ChildrenAges)
		})
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	valid := dto.CreateBookingRequest{
		PlaceID:      "place-1",
		FullName:     "Ana",
		Email:        "ana@example.com",
		Phone:        "123",
		ArrivalDate:  "2026-12-01",
		Adults:       2,
		ChildrenAges: dto.ChildAges{5},
	}

	require.NoError(t, validator.ValidateStruct(&valid))

	badDate := valid
	badDate.ArrivalDate = "01/12/2026"
	assert.Error(t, validator.ValidateStruct(&badDate))

	badAge := valid
	badAge.ChildrenAges = dto.ChildAges{30}
	assert.Error(t, validator.ValidateStruct(&badAge))

	badStatus := valid
	badStatus.Status = "confirmed"
	assert.Error(t, validator.ValidateStruct(&badStatus))
}

func TestUpdateBookingRequest_Fields(t *testing.T) {
	arrival := "2027-01-15"
	ages := dto.ChildAges{3}
	children := 0

	req := dto.UpdateBookingRequest{ArrivalDate: &arrival, ChildrenAges: &ages, Children: &children}
	assert.False(t, req.Empty())

	fields, err := req.Fields("admin")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), fields[model.FieldArrivalDate])
	assert.Equal(t, pq.Int64Array{3}, fields[model.FieldChildrenAges])
	assert.Equal(t, 0, fields[model.FieldChildren])
	assert.Equal(t, "admin", fields["modified_by"])
	assert.NotContains(t, fields, model.FieldStatus)

	assert.True(t, (&dto.UpdateBookingRequest{}).Empty())
}
