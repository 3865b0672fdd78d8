// internal/app/features/dashboard/types.go
package dashboard

import "github.com/dalemusser/raizes/internal/domain/models"

// Filter narrows the saber feed.
type Filter struct {
	// Tempo selects one cyclical time; CyclePresente shows every saber.
	Tempo models.CyclicalTime
	Q     string
}

// SaberCard is a saber as shown in the feed.
type SaberCard struct {
	models.Saber
	Style         models.TerritoryStyle `json:"style"`
	TempoLabel    string                `json:"tempo_label"`
	Valorizado    bool                  `json:"valorizado"`
	Valorizadores int                   `json:"valorizadores"`
}

// CycleCount is one slice of the temporal circle.
type CycleCount struct {
	Tempo models.CyclicalTime `json:"tempo"`
	Label string              `json:"label"`
	Count int                 `json:"count"`
}

// View is the derived dashboard state for one filter.
type View struct {
	Tempo            models.CyclicalTime `json:"tempo"`
	TempoLabel       string              `json:"tempo_label"`
	Query            string              `json:"q,omitempty"`
	Saberes          []SaberCard         `json:"saberes"`
	Ciclos           []CycleCount        `json:"ciclos"`
	Comunidades      []models.Comunidade `json:"comunidades"`
	TotalSaberes     int                 `json:"total_saberes"`
	TotalComunidades int                 `json:"total_comunidades"`
}
