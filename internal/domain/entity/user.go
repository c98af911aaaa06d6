package entity

// Role rol de la identidad autenticada.
type Role string

// Roles válidos.
const (
	RoleManager     Role = "manager"
	RoleStoreKeeper Role = "storekeeper"
)

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleStoreKeeper
}

// CanModifyCatalog indica si el rol puede crear, editar o borrar productos.
func (r Role) CanModifyCatalog() bool {
	return r == RoleManager || r == RoleStoreKeeper
}

// CanViewDashboard indica si el rol ve el dashboard y los reportes.
func (r Role) CanViewDashboard() bool {
	return r == RoleManager
}

// Identity actor autenticado de la sesión. Es un valor inmutable: el rol no cambia
// mientras dure la sesión.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// Valid descarta identidades restauradas con datos incompletos.
func (i Identity) Valid() bool {
	return i.ID != 0 && i.Email != "" && i.Role.Valid()
}

// Credential entrada del directorio de credenciales.
type Credential struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	Name         string
}

// Identity devuelve la identidad sin el hash de password.
func (c Credential) Identity() Identity {
	return Identity{ID: c.ID, Email: c.Email, Role: c.Role, Name: c.Name}
}
