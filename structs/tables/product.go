package tables

import (
	"maroon_shop/structs"

	"github.com/shopspring/decimal"
)

type Product struct {
	tableName       struct{}        `bun:"table:products,alias:p"`
	ProductID       int64           `bun:"product_id,pk,autoincrement"`
	Name            string          `bun:"name,notnull"`
	Description     string          `bun:"description,notnull"`
	PleaseNote      string          `bun:"please_note,nullzero"`
	UrlFriendlyName string          `bun:"url_friendly_name,notnull,unique"`
	ImageUrl        string          `bun:"image_url,notnull"`
	Price           decimal.Decimal `bun:"price,notnull,type:decimal(18,2)"`
}

func (p *Product) Response() structs.ProductResponse {
	return structs.ProductResponse{
		ProductID:       p.ProductID,
		Name:            p.Name,
		Description:     p.Description,
		PleaseNote:      p.PleaseNote,
		UrlFriendlyName: p.UrlFriendlyName,
		ImageUrl:        p.ImageUrl,
		Price:           p.Price,
	}
}

func NewProduct(req *structs.CreateProductRequest) *Product {
	return &Product{
		Name:            req.Name,
		Description:     req.Description,
		PleaseNote:      req.PleaseNote,
		UrlFriendlyName: req.UrlFriendlyName,
		ImageUrl:        req.ImageUrl,
		Price:           req.Price.Round(2),
	}
}

func (p *Product) Apply(req *structs.UpdateProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.PleaseNote = req.PleaseNote
	p.UrlFriendlyName = req.UrlFriendlyName
	p.ImageUrl = req.ImageUrl
	p.Price = req.Price.Round(2)
}
