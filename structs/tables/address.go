package tables

import "maroon_shop/structs"

type Address struct {
	tableName       struct{} `bun:"table:addresses,alias:a"`
	AddressID       int64    `bun:"address_id,pk,autoincrement"`
	NameOfRecipient string   `bun:"name_of_recipient,nullzero"`
	Line1           string   `bun:"line1,notnull"`
	Line2           string   `bun:"line2,nullzero"`
	Town            string   `bun:"town,nullzero"`
	County          string   `bun:"county,nullzero"`
	PostCode        string   `bun:"post_code,notnull"`
	Country         string   `bun:"country,nullzero"`
}

func (a *Address) Response() structs.AddressResponse {
	return structs.AddressResponse{
		AddressID:       a.AddressID,
		NameOfRecipient: a.NameOfRecipient,
		Line1:           a.Line1,
		Line2:           a.Line2,
		Town:            a.Town,
		County:          a.County,
		PostCode:        a.PostCode,
		Country:         a.Country,
	}
}

func NewAddress(req *structs.CreateAddressRequest) *Address {
	return &Address{
		NameOfRecipient: req.NameOfRecipient,
		Line1:           req.Line1,
		Line2:           req.Line2,
		Town:            req.Town,
		County:          req.County,
		PostCode:        req.PostCode,
		Country:         req.Country,
	}
}

// Apply overwrites every mutable field from an update request.
func (a *Address) Apply(req *structs.UpdateAddressRequest) {
	a.NameOfRecipient = req.NameOfRecipient
	a.Line1 = req.Line1
	a.Line2 = req.Line2
	a.Town = req.Town
	a.County = req.County
	a.PostCode = req.PostCode
	a.Country = req.Country
}
