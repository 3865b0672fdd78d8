// internal/domain/models/carta.go
package models

// CartaAberta is an open letter. Apoios holds supporter emails as a set.
//
// DataPublicacao (YYYY-MM-DD) is set on the first transition to
// LetterPublished and never overwritten afterwards.
type CartaAberta struct {
	ID               ID           `json:"id,omitempty"`
	Titulo           string       `json:"titulo"`
	Conteudo         string       `json:"conteudo"`
	AutorNome        string       `json:"autor_nome,omitempty"`
	AutorEmail       string       `json:"autor_email,omitempty"`
	ComunidadeOrigem string       `json:"comunidade_origem,omitempty"`
	TerritorioOrigem string       `json:"territorio_origem,omitempty"`
	Destinatarios    []string     `json:"destinatarios,omitempty"`
	Temas            []string     `json:"temas,omitempty"`
	Visibilidade     Visibility   `json:"visibilidade,omitempty"`
	Status           LetterStatus `json:"status,omitempty"`
	DataPublicacao   string       `json:"data_publicacao,omitempty"`
	Apoios           []string     `json:"apoios"`
	CreatedDate      string       `json:"created_date,omitempty"`
}

func (c CartaAberta) RecordID() ID { return c.ID }

// SearchText covers title, content and themes.
func (c CartaAberta) SearchText() []string {
	out := []string{c.Titulo, c.Conteudo}
	return append(out, c.Temas...)
}

// Published reports whether the letter is published.
func (c CartaAberta) Published() bool { return c.Status == LetterPublished }

// PubliclyListed reports whether the letter belongs in the public listing.
func (c CartaAberta) PubliclyListed() bool {
	return c.Published() && c.Visibilidade == VisibilityPublic
}
