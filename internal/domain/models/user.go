// internal/domain/models/user.go
package models

// GuestName is the display name of the fallback identity.
const GuestName = "Visitante"

// User is the participant record. Email is the identifier stored in
// endorsement, support and member lists.
type User struct {
	ID                       ID              `json:"id,omitempty"`
	Email                    string          `json:"email,omitempty"`
	FullName                 string          `json:"full_name"`
	TipoParticipante         ParticipantType `json:"tipo_participante"`
	OnboardingCompleto       bool            `json:"onboarding_completo,omitempty"`
	PovoOrigem               string          `json:"povo_origem,omitempty"`
	TerritorioOrigem         string          `json:"territorio_origem,omitempty"`
	Localizacao              string          `json:"localizacao,omitempty"`
	Apresentacao             string          `json:"apresentacao,omitempty"`
	ComunidadesParticipantes []string        `json:"comunidades_participantes,omitempty"`
}

// GuestUser is the identity used when the current user cannot be loaded.
func GuestUser() User {
	return User{FullName: GuestName, TipoParticipante: ParticipantVisitante}
}

// IsGuest reports whether u is the fallback identity or has no identifier.
// It relies on Selectable never offering ParticipantVisitante: a user who
// could pick it in onboarding would be refused every mutation.
func (u User) IsGuest() bool {
	return u.TipoParticipante == ParticipantVisitante || u.Email == ""
}

func (u User) RecordID() ID { return u.ID }

func (u User) SearchText() []string {
	return []string{u.FullName, u.Email, u.Localizacao}
}
