package dto

import "github.com/tu-usuario/contable-pro/internal/domain/entity"

// PermissionMap mapa capability -> bool en el wire. Las claves son los nombres
// JSON del conjunto cerrado (canCreateSaleEntries, ...). Es el cuerpo de
// GET/PATCH /api/user-permissions/:userId y de las respuestas de efectivos.
type PermissionMap map[string]bool

// ToOverrideSet convierte el mapa del wire al set de dominio. Claves
// desconocidas se descartan y las faltantes quedan en false (Normalize).
func (m PermissionMap) ToOverrideSet() entity.OverrideSet {
	s := entity.NewOverrideSet()
	for k, v := range m {
		c := entity.Capability(k)
		if entity.IsKnown(c) {
			s[c] = v
		}
	}
	return s
}

// FromOverrideSet convierte un set de dominio al mapa del wire, con las 14
// claves siempre presentes.
func FromOverrideSet(s entity.OverrideSet) PermissionMap {
	m := make(PermissionMap, len(entity.AllCapabilities))
	for _, c := range entity.AllCapabilities {
		m[string(c)] = s[c]
	}
	return m
}

// EffectiveFromRole calcula el mapa efectivo completo para un rol y un set
// almacenado (posiblemente nil).
func EffectiveFromRole(role entity.Role, s entity.OverrideSet) PermissionMap {
	m := make(PermissionMap, len(entity.AllCapabilities))
	for _, c := range entity.AllCapabilities {
		m[string(c)] = s.Effective(role, c)
	}
	return m
}

// ClientPermissionResponse permisos y límites a nivel account.
type ClientPermissionResponse struct {
	ClientID       string        `json:"client_id"`
	Permissions    PermissionMap `json:"permissions"`
	MaxCompanies   int           `json:"maxCompanies"`
	MaxUsers       int           `json:"maxUsers"`
	MaxInventories int           `json:"maxInventories"`
}
