package entity

import "time"

// Role papel de un usuario dentro de una empresa (valores del contrato de API).
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGestor    Role = "gestor"
	RoleAtendente Role = "atendente"
	RoleQualidade Role = "qualidade"
	RoleParceiro  Role = "parceiro"
	RoleClient    Role = "client"
)

// Grupos de roles usados por los casos de uso.
var (
	// AdminRoles control total.
	AdminRoles = []Role{RoleAdmin, RoleGestor}
	// StaffRoles todos menos client (pueden cambiar estados de órdenes).
	StaffRoles = []Role{RoleAdmin, RoleGestor, RoleAtendente, RoleQualidade, RoleParceiro}
)

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestor, RoleAtendente, RoleQualidade, RoleParceiro, RoleClient:
		return true
	}
	return false
}

// In informa si r pertenece al conjunto dado.
func (r Role) In(roles []Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// Membership vincula un usuario con una empresa y un único rol.
// Invariante: a lo sumo una membresía por (UserID, CompanyID).
type Membership struct {
	ID        string
	UserID    string
	CompanyID string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
