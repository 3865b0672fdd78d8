// internal/domain/models/comunidadevirtual.go
package models

// Virtual community kinds.
const (
	VirtualKindTematica = "tematica"
	VirtualKindGeral    = "geral"
)

// ComunidadeVirtual is an online community. Membros holds member emails as a set.
type ComunidadeVirtual struct {
	ID               ID       `json:"id,omitempty"`
	Nome             string   `json:"nome"`
	Descricao        string   `json:"descricao,omitempty"`
	Tipo             string   `json:"tipo,omitempty"`
	CriadorEmail     string   `json:"criador_email,omitempty"`
	Membros          []string `json:"membros"`
	TemasPrincipais  []string `json:"temas_principais,omitempty"`
	ComunidadePadrao bool     `json:"comunidade_padrao,omitempty"`
	CreatedDate      string   `json:"created_date,omitempty"`
}

func (c ComunidadeVirtual) RecordID() ID { return c.ID }

// SearchText covers the community name and description.
func (c ComunidadeVirtual) SearchText() []string {
	return []string{c.Nome, c.Descricao}
}
