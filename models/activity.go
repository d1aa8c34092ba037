package models

// Activity represents a NACE activity classification imported from the registry.
// NaceCode is the value companies reference through Company.ActivityCode.
type Activity struct {
	ID             uint    `gorm:"primaryKey"`
	NaceCode       string  `gorm:"uniqueIndex;not null"`
	ActivityGroup  *string
	NaceVersion    *string
	Classification *string
}

func (a *Activity) TableName() string {
	return "activities"
}
