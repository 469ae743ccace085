package entity

import (
	"strings"
	"time"
)

// Role rol normalizado de un usuario. Toda comparación de roles en la aplicación
// pasa por NormalizeRole; nunca se comparan strings crudos del token o la DB.
type Role string

const (
	RoleMaster   Role = "master"   // superadmin de plataforma (gestiona accounts)
	RoleAdmin    Role = "admin"    // administrador dentro de un client
	RoleManager  Role = "manager"  // gestor dentro de un client
	RoleCustomer Role = "customer" // dueño del account (alias histórico: "client")
	RoleUser     Role = "user"     // usuario operativo, sujeto a overrides
)

// NormalizeRole mapea un rol crudo (token, DB, requests) al enum. Insensible a
// mayúsculas. "client" es alias histórico de customer. Un valor no reconocido
// se trata como customer: fuera del conjunto restringido, con bypass de
// permisos, igual que el comportamiento original de la app.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "master", "superadmin":
		return RoleMaster
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "user":
		return RoleUser
	case "customer", "client":
		return RoleCustomer
	default:
		return RoleCustomer
	}
}

// Constrained informa si el rol está sujeto a los overrides de permisos.
// Solo user, admin y manager; cualquier otro rol tiene todas las capabilities.
func (r Role) Constrained() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleManager
}

// User representa un usuario del sistema (pertenece a un Client).
type User struct {
	ID           string
	ClientID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // crudo tal como se persiste; normalizar con NormalizeRole
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPermission registro persistido de overrides de un usuario.
// Se crea perezosamente: sin registro => todo false. Se reemplaza completo en
// cada guardado (last write wins sobre el set entero, no por clave).
type UserPermission struct {
	UserID    string
	Overrides OverrideSet
	CreatedAt time.Time
	UpdatedAt time.Time
}
