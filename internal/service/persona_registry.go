package service

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"companion-llm/internal/domain"
)

//go:embed personas.yaml
var embeddedPersonas []byte

var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrPersonaInvalid  = errors.New("persona config invalid")
)

// PersonaRegistry es de solo lectura despues de construirse; se comparte entre requests.
type PersonaRegistry struct {
	profiles map[domain.RoleType]domain.PersonalityProfile
}

// NewPersonaRegistry parsea una lista YAML de perfiles.
func NewPersonaRegistry(data []byte) (*PersonaRegistry, error) {
	var raw []domain.PersonalityProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersonaInvalid, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no personas defined", ErrPersonaInvalid)
	}

	profiles := make(map[domain.RoleType]domain.PersonalityProfile, len(raw))
	for _, p := range raw {
		role, ok := domain.ParseRoleType(string(p.Role))
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrPersonaInvalid, p.Role)
		}
		if _, dup := profiles[role]; dup {
			return nil, fmt.Errorf("%w: duplicated role %s", ErrPersonaInvalid, role)
		}
		p.Role = role
		p.Name = strings.TrimSpace(p.Name)
		p.Traits = clampTraits(p.Traits)
		profiles[role] = p
	}
	return &PersonaRegistry{profiles: profiles}, nil
}

// LoadPersonaRegistry usa el archivo indicado o, si path esta vacio, los perfiles embebidos.
func LoadPersonaRegistry(path string) (*PersonaRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewPersonaRegistry(embeddedPersonas)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	return NewPersonaRegistry(data)
}

// MustDefaultPersonaRegistry se usa en CLI y tests; los perfiles embebidos siempre parsean.
func MustDefaultPersonaRegistry() *PersonaRegistry {
	r, err := NewPersonaRegistry(embeddedPersonas)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *PersonaRegistry) Get(role domain.RoleType) (domain.PersonalityProfile, error) {
	if r == nil {
		return domain.PersonalityProfile{}, ErrPersonaNotFound
	}
	p, ok := r.profiles[role]
	if !ok {
		return domain.PersonalityProfile{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, role)
	}
	return p, nil
}

// Roles devuelve los roles cargados en orden de la enumeracion.
func (r *PersonaRegistry) Roles() []domain.RoleType {
	if r == nil {
		return nil
	}
	out := make([]domain.RoleType, 0, len(r.profiles))
	for _, role := range domain.AllRoles {
		if _, ok := r.profiles[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

func clampTraits(t domain.PersonalityTraits) domain.PersonalityTraits {
	return domain.PersonalityTraits{
		Warmth:      clamp01(t.Warmth),
		Empathy:     clamp01(t.Empathy),
		Playfulness: clamp01(t.Playfulness),
		Wisdom:      clamp01(t.Wisdom),
		Nurturing:   clamp01(t.Nurturing),
		Authority:   clamp01(t.Authority),
	}
}
