package tables

import "maroon_shop/structs"

type Customer struct {
	tableName                struct{} `bun:"table:customers,alias:c"`
	CustomerID               int64    `bun:"customer_id,pk,autoincrement"`
	FirstName                string   `bun:"first_name,notnull"`
	LastName                 string   `bun:"last_name,notnull"`
	EmailAddress             string   `bun:"email_address,notnull"`
	BillingAddressID         int64    `bun:"billing_address_id,notnull"`
	DefaultShippingAddressID int64    `bun:"default_shipping_address_id,notnull"`

	BillingAddress         *Address `bun:"rel:belongs-to,join:billing_address_id=address_id"`
	DefaultShippingAddress *Address `bun:"rel:belongs-to,join:default_shipping_address_id=address_id"`
}

func (c *Customer) Response() structs.CustomerResponse {
	return structs.CustomerResponse{
		CustomerID:               c.CustomerID,
		FirstName:                c.FirstName,
		LastName:                 c.LastName,
		EmailAddress:             c.EmailAddress,
		BillingAddressID:         c.BillingAddressID,
		DefaultShippingAddressID: c.DefaultShippingAddressID,
	}
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func NewCustomer(req *structs.CreateCustomerRequest) *Customer {
	return &Customer{
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		EmailAddress:             req.EmailAddress,
		BillingAddressID:         req.BillingAddressID,
		DefaultShippingAddressID: req.DefaultShippingAddressID,
	}
}

func (c *Customer) Apply(req *structs.UpdateCustomerRequest) {
	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.EmailAddress = req.EmailAddress
	c.BillingAddressID = req.BillingAddressID
	c.DefaultShippingAddressID = req.DefaultShippingAddressID
}
