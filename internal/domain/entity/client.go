package entity

// Tipos de documento del cliente.
const (
	DocTypeDNI = "DNI"
	DocTypeRUC = "RUC"
)

// Client representa un cliente. Las ventas guardan una copia de sus datos, no una referencia viva.
type Client struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	DocType   string `json:"docType"`
	DocNumber string `json:"docNumber"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
	Active    bool   `json:"active"`
}

// Supplier representa un proveedor (identificado por RUC).
type Supplier struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	RUC     string `json:"ruc"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}
