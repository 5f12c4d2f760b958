package entity

// Supplier proveedor de mercancía (catálogo externo, solo lectura aquí).
type Supplier struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	Active  bool
}
