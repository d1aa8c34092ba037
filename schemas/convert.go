package schemas

import "github.com/kbo-registry/kbo-crud/models"

func FromCompany(c *models.Company) CompanyRead {
	establishments := make([]EstablishmentRead, len(c.Establishments))
	for i := range c.Establishments {
		establishments[i] = FromEstablishment(&c.Establishments[i])
	}
	return CompanyRead{
		ID:               c.ID,
		EnterpriseNumber: c.EnterpriseNumber,
		Name:             c.Name,
		LegalForm:        c.LegalForm,
		Street:           c.Street,
		Number:           c.Number,
		Postcode:         c.Postcode,
		City:             c.City,
		Country:          c.Country,
		ActivityCode:     c.ActivityCode,
		Establishments:   establishments,
	}
}

func FromEstablishment(e *models.Establishment) EstablishmentRead {
	return EstablishmentRead{
		ID:                  e.ID,
		EstablishmentNumber: e.EstablishmentNumber,
		Name:                e.Name,
		Street:              e.Street,
		Number:              e.Number,
		Postcode:            e.Postcode,
		City:                e.City,
		Country:             e.Country,
		CompanyID:           e.CompanyID,
	}
}

func FromActivity(a *models.Activity) ActivityRead {
	return ActivityRead{
		ID:             a.ID,
		NaceCode:       a.NaceCode,
		ActivityGroup:  a.ActivityGroup,
		NaceVersion:    a.NaceVersion,
		Classification: a.Classification,
	}
}
