// internal/domain/models/comunidade.go
package models

// Regiao is a geo-tagged sub-location of a territorial community.
// Latitude and Longitude are optional; a region is only placed on the map
// when both are present.
type Regiao struct {
	Nome      string   `json:"nome,omitempty"`
	Cidade    string   `json:"cidade,omitempty"`
	Estado    string   `json:"estado,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both coordinates are set.
func (r Regiao) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Comunidade is a territorial community.
type Comunidade struct {
	ID             ID            `json:"id,omitempty"`
	Nome           string        `json:"nome"`
	Descricao      string        `json:"descricao,omitempty"`
	Localizacao    string        `json:"localizacao,omitempty"`
	TipoTerritorio TerritoryType `json:"tipo_territorio,omitempty"`
	Regioes        []Regiao      `json:"regioes,omitempty"`
	Liderancas     []string      `json:"liderancas,omitempty"`
	Temas          []string      `json:"temas,omitempty"`
	CreatedDate    string        `json:"created_date,omitempty"`
}

func (c Comunidade) RecordID() ID { return c.ID }

// SearchText covers the community name and location.
func (c Comunidade) SearchText() []string {
	return []string{c.Nome, c.Localizacao}
}

// TerritorySearchText extends SearchText with every region's name, city and state.
func (c Comunidade) TerritorySearchText() []string {
	out := c.SearchText()
	for _, r := range c.Regioes {
		out = append(out, r.Nome, r.Cidade, r.Estado)
	}
	return out
}
