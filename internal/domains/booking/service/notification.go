package service

import (
	"bytes"
	"fmt"
	"text/template"

	"voyage/internal/domains/booking/model"
)

const approvalSubject = "Your booking has been approved"

var approvalTemplate = template.Must(template.New("approval").Parse(`Dear {{.FullName}},

Your booking for {{.PlaceTitle}} has been approved.

Package: {{.PackageTitle}}
Arrival date: {{.ArrivalDate}}
Adults: {{.Adults}}
Children: {{.Children}}{{if .ChildrenAges}} (ages {{.ChildrenAges}}){{end}}
Price: {{printf "%.2f" .Price}}

We look forward to welcoming you.
`))

type approval struct {
	FullName     string
	PlaceTitle   string
	PackageTitle string
	ArrivalDate  string
	Adults       int
	Children     int
	ChildrenAges string
	Price        float64
}

func approvalBody(booking model.Booking, placeTitle string) (string, error) {
	data := approval{
		FullName:     booking.FullName,
		PlaceTitle:   placeTitle,
		PackageTitle: booking.PackageTitle,
		ArrivalDate:  booking.ArrivalDate.Format(model.DateFormat),
		Adults:       booking.Adults,
		Children:     booking.Children,
		Price:        booking.Price,
	}

	for idx, age := range booking.ChildrenAges {
		if idx > 0 {
			data.ChildrenAges += ", "
		}

		data.ChildrenAges += fmt.Sprint(age)
	}

	var body bytes.Buffer
	if err := approvalTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render approval email: %w", err)
	}

	return body.String(), nil
}
