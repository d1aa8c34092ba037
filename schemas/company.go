package schemas

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kbo-registry/kbo-crud/validation"
)

// CompanyCreate is the body of POST /companies.
type CompanyCreate struct {
	Name             string  `json:"name" validate:"required,max=255"`
	LegalForm        *string `json:"legal_form" validate:"omitempty,max=64"`
	Street           *string `json:"street" validate:"omitempty,max=255"`
	Number           *string `json:"number" validate:"omitempty,max=32"`
	Postcode         *string `json:"postcode" validate:"omitempty,max=16"`
	City             *string `json:"city" validate:"omitempty,max=128"`
	Country          *string `json:"country" validate:"omitempty,max=64"`
	ActivityCode     *string `json:"activity_code" validate:"omitempty,max=16"`
	EnterpriseNumber *string `json:"enterprise_number" validate:"omitempty,max=32"`
}

func (c *CompanyCreate) Validate() error {
	return validate.Struct(c)
}

// CompanyUpdate is the body of PUT /companies/{id}. Absent fields are left
// untouched and null fields are cleared.
type CompanyUpdate struct {
	Name             Optional[string] `json:"name"`
	LegalForm        Optional[string] `json:"legal_form"`
	Street           Optional[string] `json:"street"`
	Number           Optional[string] `json:"number"`
	Postcode         Optional[string] `json:"postcode"`
	City             Optional[string] `json:"city"`
	Country          Optional[string] `json:"country"`
	ActivityCode     Optional[string] `json:"activity_code"`
	EnterpriseNumber Optional[string] `json:"enterprise_number"`
}

func (c *CompanyUpdate) Validate() error {
	var errs validation.CustomValidationErrors
	if c.Name.Set && (c.Name.Null || c.Name.Value == "") {
		errs = append(errs, validation.CustomValidationError{Field: "name", Message: "is required"})
	}
	for _, f := range []struct {
		name string
		opt  Optional[string]
		max  int
	}{
		{"name", c.Name, 255},
		{"legal_form", c.LegalForm, 64},
		{"street", c.Street, 255},
		{"number", c.Number, 32},
		{"postcode", c.Postcode, 16},
		{"city", c.City, 128},
		{"country", c.Country, 64},
		{"activity_code", c.ActivityCode, 16},
		{"enterprise_number", c.EnterpriseNumber, 32},
	} {
		if f.opt.Set && !f.opt.Null && len(f.opt.Value) > f.max {
			errs = append(errs, validation.MaxLengthError(f.name, f.max))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Columns returns the present fields keyed by column name, with nil for null.
func (c *CompanyUpdate) Columns() map[string]any {
	columns := map[string]any{}
	for column, opt := range map[string]Optional[string]{
		"name":              c.Name,
		"legal_form":        c.LegalForm,
		"street":            c.Street,
		"number":            c.Number,
		"postcode":          c.Postcode,
		"city":              c.City,
		"country":           c.Country,
		"activity_code":     c.ActivityCode,
		"enterprise_number": c.EnterpriseNumber,
	} {
		if !opt.Set {
			continue
		}
		if opt.Null {
			columns[column] = nil
			continue
		}
		columns[column] = opt.Value
	}
	return columns
}

// CompanyRead is the company representation returned by the API.
type CompanyRead struct {
	ID               uint                `json:"id"`
	EnterpriseNumber *string             `json:"enterprise_number"`
	Name             string              `json:"name"`
	LegalForm        *string             `json:"legal_form"`
	Street           *string             `json:"street"`
	Number           *string             `json:"number"`
	Postcode         *string             `json:"postcode"`
	City             *string             `json:"city"`
	Country          *string             `json:"country"`
	ActivityCode     *string             `json:"activity_code"`
	Establishments   []EstablishmentRead `json:"establishments"`
}

var validate = newValidator()

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
