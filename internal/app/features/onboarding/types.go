// internal/app/features/onboarding/types.go
package onboarding

import "github.com/dalemusser/raizes/internal/domain/models"

// Form is the onboarding wizard submission.
type Form struct {
	TipoParticipante models.ParticipantType `json:"tipo_participante" validate:"required,participant" label:"Forma de participação"`
	PovoOrigem       string                 `json:"povo_origem" validate:"max=200" label:"Povo de origem"`
	TerritorioOrigem string                 `json:"territorio_origem" validate:"territory" label:"Território de origem"`
	Localizacao      string                 `json:"localizacao" validate:"max=200" label:"Localização"`
	Apresentacao     string                 `json:"apresentacao" validate:"max=2000" label:"Apresentação"`
	CriarComunidade  bool                   `json:"criar_comunidade"`
	NovaComunidade   NovaComunidade         `json:"nova_comunidade"`
}

// NovaComunidade describes a thematic virtual community to create.
type NovaComunidade struct {
	Nome      string   `json:"nome" validate:"required,max=120" label:"Nome da comunidade"`
	Descricao string   `json:"descricao" validate:"max=1000" label:"Descrição"`
	Temas     []string `json:"temas" validate:"max=10" label:"Temas"`
}

// ParticipantOption is one choice of the first wizard step.
type ParticipantOption struct {
	Value     models.ParticipantType `json:"value"`
	Descricao string                 `json:"descricao"`
}

// ParticipantOptions lists the selectable participant types.
func ParticipantOptions() []ParticipantOption {
	return []ParticipantOption{
		{models.ParticipantPovoTradicional, "Pertenço a um povo indígena, quilombola ou comunidade tradicional"},
		{models.ParticipantComunidadeTradicional, "Faço parte de uma comunidade ribeirinha, pesqueira, rural ou periférica"},
		{models.ParticipantSimpatizante, "Apoio e valorizo os saberes e lutas dos povos e comunidades tradicionais"},
	}
}

// View is what the wizard needs to render.
type View struct {
	Completo         bool                      `json:"completo"`
	ComunidadePadrao *models.ComunidadeVirtual `json:"comunidade_padrao,omitempty"`
	Participacao     []ParticipantOption       `json:"participacao"`
	Territorios      []models.TerritoryStyle   `json:"territorios"`
}
