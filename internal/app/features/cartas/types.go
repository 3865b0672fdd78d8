// internal/app/features/cartas/types.go
package cartas

import "github.com/dalemusser/raizes/internal/domain/models"

// Tabs partition the letters before the search is applied.
const (
	TabTodas  = "todas"
	TabMinhas = "minhas"
)

// ExcerptLength is the size of the plain-text summary on a card.
const ExcerptLength = 200

// Filter selects a tab and an optional search term.
type Filter struct {
	Tab string
	Q   string
}

// CartaCard is a letter as listed.
type CartaCard struct {
	models.CartaAberta
	Resumo     string `json:"resumo"`
	Apoiadores int    `json:"apoiadores"`
	Apoiada    bool   `json:"apoiada"`
	Propria    bool   `json:"propria"`
}

// Stats summarise the listing.
type Stats struct {
	Publicadas int `json:"publicadas"`
	Apoios     int `json:"apoios"`
	Minhas     int `json:"minhas"`
}

// View is the derived letters listing.
type View struct {
	Tab    string      `json:"tab"`
	Query  string      `json:"q,omitempty"`
	Cartas []CartaCard `json:"cartas"`
	Stats  Stats       `json:"stats"`
}

// Draft is the editor form. A zero ID creates a new letter.
type Draft struct {
	ID               models.ID         `json:"id,omitempty"`
	Titulo           string            `json:"titulo" validate:"required,max=200" label:"Título"`
	Conteudo         string            `json:"conteudo" validate:"max=50000" label:"Conteúdo"`
	ComunidadeOrigem string            `json:"comunidade_origem" validate:"max=200" label:"Comunidade de origem"`
	TerritorioOrigem string            `json:"territorio_origem" validate:"max=200" label:"Território de origem"`
	Destinatarios    []string          `json:"destinatarios" validate:"max=50" label:"Destinatários"`
	Temas            []string          `json:"temas" validate:"max=20" label:"Temas"`
	Visibilidade     models.Visibility `json:"visibilidade" validate:"oneof=publica|comunidade|privada" label:"Visibilidade"`
}
