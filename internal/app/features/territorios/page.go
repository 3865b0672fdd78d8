// internal/app/features/territorios/page.go
package territorios

import (
	"context"
	"strings"
	"sync"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/fanout"
	"github.com/dalemusser/raizes/internal/app/system/filter"
	"github.com/dalemusser/raizes/internal/app/system/normalize"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// ParseTipo accepts "", "todos" or a territory type.
func ParseTipo(s string) (models.TerritoryType, error) {
	s = normalize.Key(s)
	if s == "" || s == TipoTodos {
		return "", nil
	}
	return models.ParseTerritoryType(s)
}

// Page is the territory map view-model.
type Page struct {
	client *apiclient.Client
	policy viewstate.Policy
	log    *zap.Logger
	guard  viewstate.Guard

	mu          sync.RWMutex
	user        models.User
	comunidades []models.Comunidade
}

func NewPage(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Page {
	return &Page{client: client, policy: policy, log: logger, user: models.GuestUser()}
}

func (p *Page) Mount() { p.guard.Mount() }

func (p *Page) Unmount() { p.guard.Unmount() }

func (p *Page) Load(ctx context.Context) error {
	gen := p.guard.Generation()

	var (
		user        models.User
		comunidades []models.Comunidade
		ok          bool
	)
	err := fanout.Join(ctx, p.log,
		fanout.Do("me", func(ctx context.Context) error {
			user = p.client.Auth.Me(ctx)
			return nil
		}),
		fanout.Do("comunidades", func(ctx context.Context) error {
			list, err := p.client.Comunidades.List(ctx, apiclient.ListOptions{Sort: "-created_date"})
			comunidades, ok = list, err == nil
			return err
		}),
	)

	p.guard.Apply(gen, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.user = user
		if ok {
			p.comunidades = comunidades
		}
	})
	return err
}

func (p *Page) User() models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// View partitions by territory type, then searches names, locations and
// every region's name, city and state.
func (p *Page) View(f Filter) View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	byTipo := filter.Where(p.comunidades, func(c models.Comunidade) bool {
		return f.Tipo == "" || c.TipoTerritorio == f.Tipo
	})
	matched := filter.SearchBy(byTipo, f.Q, models.Comunidade.TerritorySearchText)

	tipo := string(f.Tipo)
	if tipo == "" {
		tipo = TipoTodos
	}
	v := View{
		Tipo:        tipo,
		Query:       f.Q,
		Comunidades: make([]TerritoryCard, 0, len(matched)),
		Marcadores:  []Marker{},
		Legenda:     p.legend(),
		Encontrados: len(matched),
	}
	for _, c := range matched {
		style, _ := c.TipoTerritorio.Style()
		v.Comunidades = append(v.Comunidades, TerritoryCard{Comunidade: c, Style: style})
		for _, r := range c.Regioes {
			if !r.HasCoordinates() {
				continue
			}
			v.Marcadores = append(v.Marcadores, Marker{
				ComunidadeID:   c.ID,
				ComunidadeNome: c.Nome,
				Regiao:         r,
				Latitude:       *r.Latitude,
				Longitude:      *r.Longitude,
				Style:          style,
			})
		}
	}
	return v
}

func (p *Page) legend() []LegendEntry {
	types := models.TerritoryTypes()
	counts := filter.GroupCount(p.comunidades, func(c models.Comunidade) models.TerritoryType {
		return c.TipoTerritorio
	}, types)

	out := make([]LegendEntry, 0, len(types))
	for _, t := range types {
		style, _ := t.Style()
		out = append(out, LegendEntry{TerritoryStyle: style, Count: counts[t]})
	}
	return out
}

// MarcarRegioes replaces the regions of a community. Every region needs a
// name or a city.
func (p *Page) MarcarRegioes(ctx context.Context, id models.ID, regioes []models.Regiao) (*notice.Notice, error) {
	if len(regioes) == 0 {
		return notice.Fail("Adicione ao menos uma região."), viewstate.Invalid("no regions")
	}
	clean := make([]models.Regiao, 0, len(regioes))
	for i, r := range regioes {
		r.Nome = normalize.Name(r.Nome)
		r.Cidade = normalize.Name(r.Cidade)
		r.Estado = strings.ToUpper(strings.TrimSpace(r.Estado))
		if r.Nome == "" && r.Cidade == "" {
			return notice.Fail("Cada região precisa de nome ou cidade."), viewstate.Invalid("region %d has neither name nor city", i)
		}
		clean = append(clean, r)
	}

	updated, err := p.client.Comunidades.Update(ctx, id, models.Patch{"regioes": clean})
	if err != nil {
		p.log.Error("marcar regioes: update failed", zap.String("comunidade_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao salvar regiões."), err
	}

	gen := p.guard.Generation()
	if err := p.policy.Resync(ctx, p.Load, func() {
		p.guard.Apply(gen, func() {
			p.mu.Lock()
			p.comunidades = viewstate.ReplaceByID(p.comunidades, updated)
			p.mu.Unlock()
		})
	}); err != nil {
		p.log.Warn("territorios resync incomplete", zap.Error(err))
	}
	return notice.OK("Territórios de %s marcados! 🗺️", updated.Nome), nil
}
