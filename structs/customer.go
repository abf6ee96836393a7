package structs

type CustomerResponse struct {
	CustomerID               int64  `json:"customerId"`
	FirstName                string `json:"firstName"`
	LastName                 string `json:"lastName"`
	EmailAddress             string `json:"emailAddress"`
	BillingAddressID         int64  `json:"billingAddressId"`
	DefaultShippingAddressID int64  `json:"defaultShippingAddressId"`
}

type CreateCustomerRequest struct {
	FirstName                string `json:"firstName" validate:"required,max=50" label:"First Name"`
	LastName                 string `json:"lastName" validate:"required,max=50" label:"Last Name"`
	EmailAddress             string `json:"emailAddress" validate:"required,max=100,email" label:"Email Address"`
	BillingAddressID         int64  `json:"billingAddressId" validate:"required" label:"Billing Address Id"`
	DefaultShippingAddressID int64  `json:"defaultShippingAddressId" validate:"required" label:"Default Shipping Address Id"`
}

type UpdateCustomerRequest struct {
	CustomerID               int64  `json:"customerId"`
	FirstName                string `json:"firstName" validate:"required,max=50" label:"First Name"`
	LastName                 string `json:"lastName" validate:"required,max=50" label:"Last Name"`
	EmailAddress             string `json:"emailAddress" validate:"required,max=100,email" label:"Email Address"`
	BillingAddressID         int64  `json:"billingAddressId" validate:"required" label:"Billing Address Id"`
	DefaultShippingAddressID int64  `json:"defaultShippingAddressId" validate:"required" label:"Default Shipping Address Id"`
}
