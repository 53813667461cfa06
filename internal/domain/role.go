package domain

import "strings"

// RoleType identifica la plantilla de persona de una relacion.
type RoleType string

const (
	RoleFather          RoleType = "FATHER"
	RoleMother          RoleType = "MOTHER"
	RoleGrandparent     RoleType = "GRANDPARENT"
	RoleSibling         RoleType = "SIBLING"
	RoleFriend          RoleType = "FRIEND"
	RoleMentor          RoleType = "MENTOR"
	RoleRomanticPartner RoleType = "ROMANTIC_PARTNER"
)

var AllRoles = []RoleType{
	RoleFather,
	RoleMother,
	RoleGrandparent,
	RoleSibling,
	RoleFriend,
	RoleMentor,
	RoleRomanticPartner,
}

func (r RoleType) IsValid() bool {
	switch r {
	case RoleFather, RoleMother, RoleGrandparent, RoleSibling, RoleFriend, RoleMentor, RoleRomanticPartner:
		return true
	}
	return false
}

// IsParental cubre los roles con reglas de registro y consejo profesional.
func (r RoleType) IsParental() bool {
	switch r {
	case RoleFather, RoleMother, RoleGrandparent:
		return true
	}
	return false
}

// ParseRoleType acepta variantes como "romantic-partner" o "father".
func ParseRoleType(raw string) (RoleType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	r := RoleType(normalized)
	return r, r.IsValid()
}
