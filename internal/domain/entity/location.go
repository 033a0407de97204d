package entity

import "fmt"

// Location es una ubicación física de stock. Enumeración cerrada: toda
// comparación sobre ubicaciones debe ser exhaustiva sobre estas dos variantes.
type Location string

const (
	LocationBackroom  Location = "BACKROOM"  // bodega / trastienda
	LocationShopfloor Location = "SHOPFLOOR" // piso de venta
)

// ParseLocation convierte la representación externa (string) en Location.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationBackroom:
		return LocationBackroom, nil
	case LocationShopfloor:
		return LocationShopfloor, nil
	}
	return "", fmt.Errorf("ubicación desconocida: %q", s)
}

// IsValid indica si la ubicación es una de las variantes conocidas.
func (l Location) IsValid() bool {
	return l == LocationBackroom || l == LocationShopfloor
}
