// Package servicedef describes the JSON request bodies accepted by the shop API.
package servicedef

// Field names of the responses that the steps look at.
const (
	FieldID     = "ID"
	FieldName   = "name"
	FieldStatus = "status"
)

type CreateShopParams struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	OwnerID     int    `json:"owner_id" yaml:"owner_id"`
}

type UpdateShopParams struct {
	Name        string `json:"name,omitempty" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

type CreateProductParams struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Stock       int     `json:"stock" yaml:"stock"`
	ProductImg  string  `json:"product_img" yaml:"product_img"`
}

type UpdateProductParams struct {
	Name  string  `json:"name,omitempty" yaml:"name"`
	Price float64 `json:"price,omitempty" yaml:"price"`
	Stock int     `json:"stock,omitempty" yaml:"stock"`
}

type OrderItemParams struct {
	ProductID   int     `json:"product_id" yaml:"product_id"`
	ProductName string  `json:"product_name" yaml:"product_name"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
}

type CreateOrderParams struct {
	UserID int               `json:"user_id" yaml:"user_id"`
	Items  []OrderItemParams `json:"items" yaml:"items"`
}

type UpdateOrderStatusParams struct {
	Status string `json:"status" yaml:"status"`
}
