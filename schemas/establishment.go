package schemas

// EstablishmentInput holds the editable establishment fields. It is the body
// of PUT /establishments/{id}, which replaces all of them.
type EstablishmentInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Street   *string `json:"street" validate:"omitempty,max=255"`
	Number   *string `json:"number" validate:"omitempty,max=32"`
	Postcode *string `json:"postcode" validate:"omitempty,max=16"`
	City     *string `json:"city" validate:"omitempty,max=128"`
	Country  *string `json:"country" validate:"omitempty,max=64"`
}

func (e *EstablishmentInput) Validate() error {
	return validate.Struct(e)
}

// EstablishmentCreate is the body of POST /companies/{id}/establishments.
type EstablishmentCreate struct {
	EstablishmentInput
	EstablishmentNumber *string `json:"establishment_number" validate:"omitempty,max=32"`
}

func (e *EstablishmentCreate) Validate() error {
	return validate.Struct(e)
}

type EstablishmentRead struct {
	ID                  uint    `json:"id"`
	EstablishmentNumber *string `json:"establishment_number"`
	Name                string  `json:"name"`
	Street              *string `json:"street"`
	Number              *string `json:"number"`
	Postcode            *string `json:"postcode"`
	City                *string `json:"city"`
	Country             *string `json:"country"`
	CompanyID           uint    `json:"company_id"`
}
