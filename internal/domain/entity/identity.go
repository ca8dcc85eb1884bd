package entity

// Roles emitidos por Supabase Auth en el claim "role".
const (
	RoleAuthenticated = "authenticated"
	RoleServiceRole   = "service_role"
)

// Identity usuario autenticado por el proveedor de identidad externo (Supabase Auth).
// No se persiste en esta aplicación.
type Identity struct {
	UserID string
	Email  string
	Role   string
}
