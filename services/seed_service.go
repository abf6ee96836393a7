package services

import (
	"context"
	_ "embed"
	"fmt"
	"maroon_shop/database"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalogue.yaml
var defaultCatalogue []byte

type Catalogue struct {
	Products  []CatalogueProduct  `yaml:"products"`
	Customers []CatalogueCustomer `yaml:"customers"`
}

type CatalogueProduct struct {
	Name            string `yaml:"name"`
	UrlFriendlyName string `yaml:"urlFriendlyName"`
	ImageUrl        string `yaml:"imageUrl"`
	Price           string `yaml:"price"`
	Description     string `yaml:"description"`
	PleaseNote      string `yaml:"pleaseNote"`
}

type CatalogueAddress struct {
	NameOfRecipient string `yaml:"nameOfRecipient"`
	Line1           string `yaml:"line1"`
	Line2           string `yaml:"line2"`
	Town            string `yaml:"town"`
	County          string `yaml:"county"`
	PostCode        string `yaml:"postCode"`
	Country         string `yaml:"country"`
}

type CatalogueLine struct {
	Product  string `yaml:"product"`
	Quantity int    `yaml:"quantity"`
}

type CatalogueCustomer struct {
	FirstName       string           `yaml:"firstName"`
	LastName        string           `yaml:"lastName"`
	EmailAddress    string           `yaml:"emailAddress"`
	BillingAddress  CatalogueAddress `yaml:"billingAddress"`
	ShippingAddress CatalogueAddress `yaml:"shippingAddress"`
	Basket          []CatalogueLine  `yaml:"basket"`
	Checkout        bool             `yaml:"checkout"`
}

// ParseCatalogue decodes a YAML catalogue. Nil input yields the embedded one.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	if data == nil {
		data = defaultCatalogue
	}
	var catalogue Catalogue
	if err := yaml.Unmarshal(data, &catalogue); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	return &catalogue, nil
}

// SeedResult reports what a seed run created.
type SeedResult struct {
	Products  int
	Customers int
	Baskets   []int64
	Orders    []int64
}

type SeedService struct {
	logger   *gecho.Logger
	db       bun.IDB
	repos    *repositories.Manager
	basket   *BasketService
	checkout *CheckoutService
}

func NewSeedService(logger *gecho.Logger, db bun.IDB, repos *repositories.Manager, basket *BasketService, checkout *CheckoutService) *SeedService {
	return &SeedService{
		logger:   logger,
		db:       db,
		repos:    repos,
		basket:   basket,
		checkout: checkout,
	}
}

// Seed drops and recreates every table, then loads the catalogue. Customers marked
// for checkout have their basket converted to an order.
func (ss *SeedService) Seed(ctx context.Context, catalogue *Catalogue) (*SeedResult, error) {
	if err := database.ResetSchema(ctx, ss.db); err != nil {
		return nil, err
	}

	result := &SeedResult{}
	products := make(map[string]int64, len(catalogue.Products))
	for _, p := range catalogue.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %s has an invalid price: %w", p.UrlFriendlyName, err)
		}
		created, err := ss.repos.Products.Create(ctx, &structs.CreateProductRequest{
			Name:            p.Name,
			UrlFriendlyName: p.UrlFriendlyName,
			Description:     p.Description,
			PleaseNote:      p.PleaseNote,
			ImageUrl:        p.ImageUrl,
			Price:           price,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create product %s: %w", p.UrlFriendlyName, err)
		}
		products[p.UrlFriendlyName] = created.ProductID
		result.Products++
	}

	for _, c := range catalogue.Customers {
		customer, err := ss.createCustomer(ctx, c)
		if err != nil {
			return nil, err
		}
		result.Customers++

		var basket *tables.Basket
		for _, line := range c.Basket {
			productID, ok := products[line.Product]
			if !ok {
				return nil, fmt.Errorf("basket for %s references unknown product %s", c.EmailAddress, line.Product)
			}
			basket, err = ss.basket.AddToBasket(ctx, customer.CustomerID, productID, line.Quantity)
			if err != nil {
				return nil, err
			}
		}
		if basket == nil {
			continue
		}

		if !c.Checkout {
			result.Baskets = append(result.Baskets, basket.BasketID)
			continue
		}
		order, err := ss.checkout.ConvertToOrder(ctx, basket.BasketID)
		if err != nil {
			return nil, err
		}
		result.Orders = append(result.Orders, order.OrderID)
	}

	ss.logger.Info("Database seeded",
		gecho.Field("products", result.Products),
		gecho.Field("customers", result.Customers),
		gecho.Field("baskets", len(result.Baskets)),
		gecho.Field("orders", len(result.Orders)),
	)

	return result, nil
}

func (ss *SeedService) createCustomer(ctx context.Context, c CatalogueCustomer) (*tables.Customer, error) {
	billing, err := ss.createAddress(ctx, c.BillingAddress)
	if err != nil {
		return nil, err
	}

	shippingID := billing.AddressID
	if c.ShippingAddress != c.BillingAddress {
		shipping, err := ss.createAddress(ctx, c.ShippingAddress)
		if err != nil {
			return nil, err
		}
		shippingID = shipping.AddressID
	}

	customer, err := ss.repos.Customers.Create(ctx, &structs.CreateCustomerRequest{
		FirstName:                c.FirstName,
		LastName:                 c.LastName,
		EmailAddress:             c.EmailAddress,
		BillingAddressID:         billing.AddressID,
		DefaultShippingAddressID: shippingID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create customer %s: %w", c.EmailAddress, err)
	}
	return customer, nil
}

func (ss *SeedService) createAddress(ctx context.Context, a CatalogueAddress) (*tables.Address, error) {
	return ss.repos.Addresses.Create(ctx, &structs.CreateAddressRequest{
		NameOfRecipient: a.NameOfRecipient,
		Line1:           a.Line1,
		Line2:           a.Line2,
		Town:            a.Town,
		County:          a.County,
		PostCode:        a.PostCode,
		Country:         a.Country,
	})
}
