package entity

// Clasificación de uso de una ubicación de almacenamiento.
const (
	LocationUsageInternal        = "internal"
	LocationUsageTransit         = "transit"
	LocationUsageCustomer        = "customer"
	LocationUsageSupplier        = "supplier"
	LocationUsageInventoryLoss   = "inventory_loss"
	LocationUsageProduction      = "production"
	LocationUsageView            = "view"
	LocationUsageTransitExternal = "transit_external"
)

// ValidLocationUsages son los usos que califican una ubicación para el
// reporte de valorización: solo interna y tránsito.
var ValidLocationUsages = []string{LocationUsageInternal, LocationUsageTransit}

// Location representa una ubicación de almacenamiento (catálogo externo, solo lectura).
type Location struct {
	ID    string
	Name  string
	Usage string
}

// IsValid indica si la ubicación califica para el reporte (interna o tránsito).
func (l *Location) IsValid() bool {
	return l.Usage == LocationUsageInternal || l.Usage == LocationUsageTransit
}
