// internal/domain/models/saber.go
package models

// Saber is a knowledge entry shared by a guardian of a tradition.
//
// Valorizacoes holds the emails of the users who endorsed the entry and is
// kept as a set: each email appears at most once.
type Saber struct {
	ID                ID            `json:"id,omitempty"`
	Titulo            string        `json:"titulo"`
	Narrativa         string        `json:"narrativa,omitempty"`
	Guardiao          string        `json:"guardiao,omitempty"`
	Tipo              string        `json:"tipo,omitempty"`
	TipoTerritorio    TerritoryType `json:"tipo_territorio,omitempty"`
	TempoCircular     CyclicalTime  `json:"tempo_circular,omitempty"`
	Territorio        string        `json:"territorio,omitempty"`
	Comunidade        string        `json:"comunidade,omitempty"`
	AudioURL          string        `json:"audio_url,omitempty"`
	ImagemURL         string        `json:"imagem_url,omitempty"`
	Tags              []string      `json:"tags,omitempty"`
	Valorizacoes      []string      `json:"valorizacoes"`
	Compartilhamentos int           `json:"compartilhamentos"`
	CreatedDate       string        `json:"created_date,omitempty"`
}

// RecordID satisfies the id accessor used by list helpers.
func (s Saber) RecordID() ID { return s.ID }

// SearchText returns the fields a search term is matched against.
func (s Saber) SearchText() []string {
	out := []string{s.Titulo, s.Narrativa, s.Guardiao, s.Territorio, s.Comunidade}
	return append(out, s.Tags...)
}
