package models

// Establishment represents a branch or operating unit of a company.
type Establishment struct {
	ID                  uint    `gorm:"primaryKey"`
	EstablishmentNumber *string `gorm:"uniqueIndex"`
	Name                string  `gorm:"not null"`
	Street              *string
	Number              *string
	Postcode            *string
	City                *string
	Country             *string
	CompanyID           uint `gorm:"not null;index"`
}

func (e *Establishment) TableName() string {
	return "establishments"
}
