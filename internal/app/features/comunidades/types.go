// internal/app/features/comunidades/types.go
package comunidades

import "github.com/dalemusser/raizes/internal/domain/models"

// TerritorialCard is a territorial community with its display style.
type TerritorialCard struct {
	models.Comunidade
	Style models.TerritoryStyle `json:"style"`
}

// VirtualCard is a virtual community with its member count.
type VirtualCard struct {
	models.ComunidadeVirtual
	TotalMembros int  `json:"total_membros"`
	Participa    bool `json:"participa"`
}

// View is the derived communities listing for one search term.
type View struct {
	Query            string            `json:"q,omitempty"`
	Territoriais     []TerritorialCard `json:"territoriais"`
	Virtuais         []VirtualCard     `json:"virtuais"`
	TotalTerritorios int               `json:"total_territoriais"`
	TotalVirtuais    int               `json:"total_virtuais"`
}
