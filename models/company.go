package models

// DefaultCountry is stored when a company or establishment is created without a country.
const DefaultCountry = "Belgium"

// Company represents an enterprise registered in the KBO.
// It owns zero or more establishments, which are removed together with it.
type Company struct {
	ID               uint    `gorm:"primaryKey"`
	EnterpriseNumber *string `gorm:"uniqueIndex"`
	Name             string  `gorm:"not null"`
	LegalForm        *string
	Street           *string
	Number           *string
	Postcode         *string
	City             *string
	Country          *string
	// ActivityCode refers to Activity.NaceCode. It is checked on creation only.
	ActivityCode   *string
	Establishments []Establishment `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

func (c *Company) TableName() string {
	return "companies"
}
