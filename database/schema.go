package database

import (
	"context"
	"fmt"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

type tableDef struct {
	model       any
	foreignKeys []string
}

// tableDefs lists the tables in dependency order.
var tableDefs = []tableDef{
	{model: (*tables.Address)(nil)},
	{model: (*tables.Product)(nil)},
	{
		model: (*tables.Customer)(nil),
		foreignKeys: []string{
			`("billing_address_id") REFERENCES "addresses" ("address_id")`,
			`("default_shipping_address_id") REFERENCES "addresses" ("address_id")`,
		},
	},
	{
		model: (*tables.Basket)(nil),
		foreignKeys: []string{
			`("customer_id") REFERENCES "customers" ("customer_id")`,
		},
	},
	{
		model: (*tables.BasketItem)(nil),
		foreignKeys: []string{
			`("basket_id") REFERENCES "baskets" ("basket_id")`,
			`("product_id") REFERENCES "products" ("product_id")`,
		},
	},
	{
		model: (*tables.Order)(nil),
		foreignKeys: []string{
			`("customer_id") REFERENCES "customers" ("customer_id")`,
			`("billing_address_id") REFERENCES "addresses" ("address_id")`,
			`("shipping_address_id") REFERENCES "addresses" ("address_id")`,
		},
	},
	{
		model: (*tables.OrderItem)(nil),
		foreignKeys: []string{
			`("order_id") REFERENCES "orders" ("order_id")`,
			`("product_id") REFERENCES "products" ("product_id")`,
		},
	},
}

// CreateSchema creates every table that does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, def := range tableDefs {
		query := db.NewCreateTable().Model(def.model).IfNotExists()
		for _, fk := range def.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", def.model, err)
		}
	}
	return nil
}

// DropSchema drops every table in reverse dependency order.
func DropSchema(ctx context.Context, db bun.IDB) error {
	for i := len(tableDefs) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(tableDefs[i].model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", tableDefs[i].model, err)
		}
	}
	return nil
}

// ResetSchema drops and recreates the schema.
func ResetSchema(ctx context.Context, db bun.IDB) error {
	if err := DropSchema(ctx, db); err != nil {
		return err
	}
	return CreateSchema(ctx, db)
}
