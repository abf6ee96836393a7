package structs

type AddressResponse struct {
	AddressID       int64  `json:"addressId"`
	NameOfRecipient string `json:"nameOfRecipient"`
	Line1           string `json:"line1"`
	Line2           string `json:"line2"`
	Town            string `json:"town"`
	County          string `json:"county"`
	PostCode        string `json:"postCode"`
	Country         string `json:"country"`
}

type CreateAddressRequest struct {
	NameOfRecipient string `json:"nameOfRecipient" validate:"omitempty,max=50" label:"Name of Recipient"`
	Line1           string `json:"line1" validate:"required,max=50" label:"Line 1"`
	Line2           string `json:"line2" validate:"omitempty,max=50" label:"Line 2"`
	Town            string `json:"town" validate:"omitempty,max=50" label:"Town"`
	County          string `json:"county" validate:"omitempty,max=50" label:"County"`
	PostCode        string `json:"postCode" validate:"required,max=50" label:"Post Code"`
	Country         string `json:"country" validate:"omitempty,max=50" label:"Country"`
}

type UpdateAddressRequest struct {
	AddressID       int64  `json:"addressId"`
	NameOfRecipient string `json:"nameOfRecipient" validate:"omitempty,max=50" label:"Name of Recipient"`
	Line1           string `json:"line1" validate:"required,max=50" label:"Line 1"`
	Line2           string `json:"line2" validate:"omitempty,max=50" label:"Line 2"`
	Town            string `json:"town" validate:"omitempty,max=50" label:"Town"`
	County          string `json:"county" validate:"omitempty,max=50" label:"County"`
	PostCode        string `json:"postCode" validate:"required,max=50" label:"Post Code"`
	Country         string `json:"country" validate:"omitempty,max=50" label:"Country"`
}
