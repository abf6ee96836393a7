package structs

import "github.com/shopspring/decimal"

type ProductResponse struct {
	ProductID       int64           `json:"productId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PleaseNote      string          `json:"pleaseNote,omitempty"`
	UrlFriendlyName string          `json:"urlFriendlyName"`
	ImageUrl        string          `json:"imageUrl"`
	Price           decimal.Decimal `json:"price"`
}

type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,max=50" label:"Product Name"`
	UrlFriendlyName string          `json:"urlFriendlyName" validate:"required,max=50,slug" label:"Url Friendly Name"`
	Description     string          `json:"description" validate:"required" label:"Description"`
	PleaseNote      string          `json:"pleaseNote"`
	ImageUrl        string          `json:"imageUrl" validate:"required,max=512" label:"ImageUrl"`
	Price           decimal.Decimal `json:"price" validate:"gt=0,money" label:"Price"`
}

type UpdateProductRequest struct {
	ProductID       int64           `json:"productId"`
	Name            string          `json:"name" validate:"required,max=50" label:"Product Name"`
	UrlFriendlyName string          `json:"urlFriendlyName" validate:"required,max=50,slug" label:"Url Friendly Name"`
	Description     string          `json:"description" validate:"required" label:"Description"`
	PleaseNote      string          `json:"pleaseNote"`
	ImageUrl        string          `json:"imageUrl" validate:"required,max=512" label:"ImageUrl"`
	Price           decimal.Decimal `json:"price" validate:"gt=0,money" label:"Price"`
}
