package entity

// Category es la familia de commodity de un producto (conjunto cerrado).
type Category string

// Categorías válidas.
const (
	CategoryGrains     Category = "Grains"
	CategorySeeds      Category = "Seeds"
	CategoryOils       Category = "Oils"
	CategoryBeverages  Category = "Beverages"
	CategorySweeteners Category = "Sweeteners"
	CategoryFibers     Category = "Fibers"
	CategoryMetals     Category = "Metals"
	CategoryMinerals   Category = "Minerals"
)

// Categories lista las categorías en el orden en que se ofrecen en el formulario.
var Categories = []Category{
	CategoryGrains, CategorySeeds, CategoryOils, CategoryBeverages,
	CategorySweeteners, CategoryFibers, CategoryMetals, CategoryMinerals,
}

// Valid informa si la categoría pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Unit es la unidad de medida de la cantidad en stock.
type Unit string

// Unidades válidas.
const (
	UnitKg     Unit = "kg"
	UnitLiters Unit = "liters"
	UnitBales  Unit = "bales"
	UnitTons   Unit = "tons"
	UnitPieces Unit = "pieces"
)

// Units lista las unidades en orden de presentación. kg es la unidad por defecto.
var Units = []Unit{UnitKg, UnitLiters, UnitBales, UnitTons, UnitPieces}

// Valid informa si la unidad pertenece al conjunto cerrado.
func (u Unit) Valid() bool {
	for _, v := range Units {
		if v == u {
			return true
		}
	}
	return false
}
