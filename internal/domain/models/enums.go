// internal/domain/models/enums.go
package models

// Canonical knowledge entry (saber) type identifiers.
const (
	SaberTypeMedicinaTradicional  = "medicina_tradicional"
	SaberTypeAgriculturaAncestral = "agricultura_ancestral"
	SaberTypeArtesanato           = "artesanato"
	SaberTypeMusicaOral           = "musica_oral"
	SaberTypeHistoriaOral         = "historia_oral"
	SaberTypePraticasEspirituais  = "praticas_espirituais"
	SaberTypeCulinariaTradicional = "culinaria_tradicional"
	SaberTypeTecnologiasSociais   = "tecnologias_sociais"
)

// SaberTypes is the full set of allowed saber type identifiers.
var SaberTypes = []string{
	SaberTypeMedicinaTradicional,
	SaberTypeAgriculturaAncestral,
	SaberTypeArtesanato,
	SaberTypeMusicaOral,
	SaberTypeHistoriaOral,
	SaberTypePraticasEspirituais,
	SaberTypeCulinariaTradicional,
	SaberTypeTecnologiasSociais,
}

// ParticipantType tags how a user takes part in the network.
type ParticipantType string

const (
	ParticipantPovoTradicional       ParticipantType = "povo_tradicional"
	ParticipantComunidadeTradicional ParticipantType = "comunidade_tradicional"
	ParticipantSimpatizante          ParticipantType = "simpatizante"
	ParticipantVisitante             ParticipantType = "visitante"
)

// Selectable reports whether p can be chosen during onboarding.
// Visitante is reserved for the guest identity (see User.IsGuest).
func (p ParticipantType) Selectable() bool {
	switch p {
	case ParticipantPovoTradicional, ParticipantComunidadeTradicional, ParticipantSimpatizante:
		return true
	}
	return false
}

// Traditional reports whether p belongs to a people or traditional community;
// only those participants record an origin people and territory.
func (p ParticipantType) Traditional() bool {
	return p == ParticipantPovoTradicional || p == ParticipantComunidadeTradicional
}

// LetterStatus is the publication state of an open letter.
type LetterStatus string

const (
	LetterDraft     LetterStatus = "rascunho"
	LetterPublished LetterStatus = "publicada"
)

// Valid reports whether s is a known status.
func (s LetterStatus) Valid() bool {
	return s == LetterDraft || s == LetterPublished
}

// Visibility is the audience scope of an open letter.
type Visibility string

const (
	VisibilityPublic    Visibility = "publica"
	VisibilityCommunity Visibility = "comunidade"
	VisibilityPrivate   Visibility = "privada"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityCommunity, VisibilityPrivate:
		return true
	}
	return false
}
