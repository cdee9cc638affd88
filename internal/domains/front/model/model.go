package model

import "voyage/shared/model"

const (
	TableName  = "fronts"
	EntityName = "front"

	FieldID          = "id"
	FieldCompanyLogo = "company_logo"

	DirectoryLogo = "front"
)

// Front is the site branding record.
type Front struct {
	ID          string `db:"id"`
	CompanyLogo string `db:"company_logo"`
	model.Metadata
}
