// internal/domain/models/territory.go
package models

import (
	"errors"
	"fmt"
)

// TerritoryType is the closed set of territory categories a community or a
// knowledge entry belongs to. Values are the stable keys stored on the backend.
type TerritoryType string

const (
	TerritoryQuilombo  TerritoryType = "quilombo"
	TerritoryAldeia    TerritoryType = "aldeia"
	TerritoryPeriferia TerritoryType = "periferia"
	TerritoryFloresta  TerritoryType = "floresta"
	TerritoryCampo     TerritoryType = "campo"
	TerritoryCidade    TerritoryType = "cidade"
	TerritoryRio       TerritoryType = "rio"
	TerritoryMontanha  TerritoryType = "montanha"
)

// TerritoryTypes returns every territory type in legend order.
func TerritoryTypes() []TerritoryType {
	return []TerritoryType{
		TerritoryQuilombo,
		TerritoryAldeia,
		TerritoryPeriferia,
		TerritoryFloresta,
		TerritoryCampo,
		TerritoryCidade,
		TerritoryRio,
		TerritoryMontanha,
	}
}

// ErrUnknownTerritory is returned (wrapped) when a value is outside the closed set.
var ErrUnknownTerritory = errors.New("unknown territory type")

// ParseTerritoryType validates s against the closed set.
func ParseTerritoryType(s string) (TerritoryType, error) {
	t := TerritoryType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTerritory, s)
	}
	return t, nil
}

// Valid reports whether t is one of the known territory types.
func (t TerritoryType) Valid() bool {
	_, ok := t.lookup()
	return ok
}

// TerritoryStyle is the presentation tuple used by cards, map markers and the legend.
type TerritoryStyle struct {
	Type  TerritoryType `json:"type"`
	Label string        `json:"label"`
	Color string        `json:"color"`
	Emoji string        `json:"emoji"`
}

// Style returns the presentation for t. Unknown types yield ok=false instead
// of a placeholder glyph; callers decide how to report them.
func (t TerritoryType) Style() (TerritoryStyle, bool) {
	return t.lookup()
}

func (t TerritoryType) lookup() (TerritoryStyle, bool) {
	s := TerritoryStyle{Type: t}
	switch t {
	case TerritoryQuilombo:
		s.Label, s.Color, s.Emoji = "Quilombo", "#9333ea", "🏘️"
	case TerritoryAldeia:
		s.Label, s.Color, s.Emoji = "Aldeia", "#059669", "🌳"
	case TerritoryPeriferia:
		s.Label, s.Color, s.Emoji = "Periferia", "#ea580c", "🏢"
	case TerritoryFloresta:
		s.Label, s.Color, s.Emoji = "Floresta", "#10b981", "🌲"
	case TerritoryCampo:
		s.Label, s.Color, s.Emoji = "Campo", "#eab308", "🌾"
	case TerritoryCidade:
		s.Label, s.Color, s.Emoji = "Cidade", "#3b82f6", "🏙️"
	case TerritoryRio:
		s.Label, s.Color, s.Emoji = "Rio", "#06b6d4", "🏞️"
	case TerritoryMontanha:
		s.Label, s.Color, s.Emoji = "Montanha", "#6b7280", "⛰️"
	default:
		return TerritoryStyle{}, false
	}
	return s, true
}
