package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El estado no se recibe: se deriva.
// Quantity y Price son punteros para distinguir el campo ausente o null del cero.
type CreateProductRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Category string           `json:"category" validate:"required,category"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required,dgte=0"`
	Unit     string           `json:"unit" validate:"omitempty,unit"` // vacío = kg
	Price    *decimal.Decimal `json:"price" validate:"required,dgt=0"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
// Version opcional: si viene y no coincide con la actual, la actualización se rechaza.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitnil,min=1,max=200"`
	Category *string          `json:"category" validate:"omitnil,category"`
	Quantity *decimal.Decimal `json:"quantity" validate:"omitnil,dgte=0"`
	Unit     *string          `json:"unit" validate:"omitnil,unit"`
	Price    *decimal.Decimal `json:"price" validate:"omitnil,dgt=0"`
	Version  *int64           `json:"version" validate:"omitnil,min=1"`
}

// ProductFilter parámetros de GET /api/products. "all" o vacío = sin filtro.
type ProductFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Status   string `query:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Value     decimal.Decimal `json:"value"`
	Status    string          `json:"status"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista filtrada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// CatalogOptionsResponse valores cerrados que ofrece el formulario de producto.
type CatalogOptionsResponse struct {
	Categories  []string `json:"categories"`
	Units       []string `json:"units"`
	Statuses    []string `json:"statuses"`
	DefaultUnit string   `json:"default_unit"`
}
