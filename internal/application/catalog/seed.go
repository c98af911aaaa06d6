package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// SeedProducts devuelve una copia nueva del catálogo inicial con el que arranca cada proceso.
// El estado no se incluye: lo deriva NewEngine.
func SeedProducts() []entity.Product {
	return []entity.Product{
		seed(1, "Wheat Grain", entity.CategoryGrains, "5000", entity.UnitKg, "2.5"),
		seed(2, "Rice Basmati", entity.CategoryGrains, "3200", entity.UnitKg, "4.2"),
		seed(3, "Corn Seeds", entity.CategorySeeds, "1500", entity.UnitKg, "3.0"),
		seed(4, "Soybean Oil", entity.CategoryOils, "800", entity.UnitLiters, "5.5"),
		seed(5, "Coffee Beans", entity.CategoryBeverages, "450", entity.UnitKg, "12.0"),
		seed(6, "Sugar Cane", entity.CategorySweeteners, "2800", entity.UnitKg, "1.8"),
		seed(7, "Cotton Bales", entity.CategoryFibers, "120", entity.UnitBales, "85.0"),
		seed(8, "Cocoa Powder", entity.CategoryBeverages, "0", entity.UnitKg, "8.5"),
		seed(9, "Olive Oil", entity.CategoryOils, "600", entity.UnitLiters, "15.0"),
		seed(10, "Barley", entity.CategoryGrains, "1800", entity.UnitKg, "2.8"),
	}
}

func seed(id int64, name string, cat entity.Category, qty string, unit entity.Unit, price string) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     name,
		Category: cat,
		Quantity: decimal.RequireFromString(qty),
		Unit:     unit,
		Price:    decimal.RequireFromString(price),
	}
}
