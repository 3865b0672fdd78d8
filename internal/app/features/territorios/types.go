// internal/app/features/territorios/types.go
package territorios

import "github.com/dalemusser/raizes/internal/domain/models"

// TipoTodos selects every territory type.
const TipoTodos = "todos"

// Filter narrows the territory listing.
type Filter struct {
	// Tipo is a territory type, or "" / TipoTodos for all.
	Tipo models.TerritoryType
	Q    string
}

// Marker is one region placed on the map.
type Marker struct {
	ComunidadeID   models.ID             `json:"comunidade_id"`
	ComunidadeNome string                `json:"comunidade_nome"`
	Regiao         models.Regiao         `json:"regiao"`
	Latitude       float64               `json:"latitude"`
	Longitude      float64               `json:"longitude"`
	Style          models.TerritoryStyle `json:"style"`
}

// LegendEntry is one territory type in the map legend.
type LegendEntry struct {
	models.TerritoryStyle
	Count int `json:"count"`
}

// TerritoryCard is a community in the listing.
type TerritoryCard struct {
	models.Comunidade
	Style models.TerritoryStyle `json:"style"`
}

// View is the derived territory listing.
type View struct {
	Tipo        string          `json:"tipo"`
	Query       string          `json:"q,omitempty"`
	Comunidades []TerritoryCard `json:"comunidades"`
	Marcadores  []Marker        `json:"marcadores"`
	Legenda     []LegendEntry   `json:"legenda"`
	Encontrados int             `json:"encontrados"`
}
