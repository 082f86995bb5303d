package entity

// Roles válidos para SystemUser.
const (
	RoleAdministrador = "Administrador"
	RoleGerente       = "Gerente"
	RoleVendedor      = "Vendedor"
)

// MasterUserID id reservado de la cuenta maestra; no se puede eliminar.
const MasterUserID ID = "master-1"

// SystemUser usuario del panel. Password puede ser texto plano (registros heredados) o hash bcrypt.
type SystemUser struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	DNI       string `json:"dni"`
	Phone     string `json:"phone"`
	Functions string `json:"functions"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Photo     string `json:"photo,omitempty"` // data-URI; puede vaciarse antes de cachear
	Active    bool   `json:"active"`
}

// IsMaster indica si es la cuenta maestra.
func (u SystemUser) IsMaster() bool {
	return u.ID.Equal(MasterUserID)
}

// SeedUser cuenta maestra usada cuando no hay usuarios en caché ni en la nube.
func SeedUser() SystemUser {
	return SystemUser{
		ID:        MasterUserID,
		Name:      "Alejandro Miranda",
		DNI:       "00000000",
		Phone:     "999888777",
		Functions: "Administración Total",
		Username:  "FO-ALEJANDRO",
		Password:  "123456",
		Role:      RoleAdministrador,
		Active:    true,
	}
}
