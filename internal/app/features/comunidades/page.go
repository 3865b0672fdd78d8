// internal/app/features/comunidades/page.go
package comunidades

import (
	"context"
	"sync"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/fanout"
	"github.com/dalemusser/raizes/internal/app/system/filter"
	"github.com/dalemusser/raizes/internal/app/system/membership"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

var newestFirst = apiclient.ListOptions{Sort: "-created_date"}

// Page lists territorial and virtual communities side by side.
type Page struct {
	client *apiclient.Client
	policy viewstate.Policy
	log    *zap.Logger
	guard  viewstate.Guard

	mu           sync.RWMutex
	user         models.User
	territoriais []models.Comunidade
	virtuais     []models.ComunidadeVirtual
}

func NewPage(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Page {
	return &Page{client: client, policy: policy, log: logger, user: models.GuestUser()}
}

func (p *Page) Mount() { p.guard.Mount() }
func (p *Page) Unmount() { p.guard.Unmount() }

// Load fetches the user and both community lists concurrently.
func (p *Page) Load(ctx context.Context) error {
	gen := p.guard.Generation()

	var (
		user         models.User
		territoriais []models.Comunidade
		virtuais     []models.ComunidadeVirtual
		okT, okV     bool
	)
	err := fanout.Join(ctx, p.log,
		fanout.Do("me", func(ctx context.Context) error {
			user = p.client.Auth.Me(ctx)
			return nil
		}),
		fanout.Do("comunidades", func(ctx context.Context) error {
			list, err := p.client.Comunidades.List(ctx, newestFirst)
			territoriais, okT = list, err == nil
			return err
		}),
		fanout.Do("comunidades_virtuais", func(ctx context.Context) error {
			list, err := p.client.ComunidadesVirtuais.List(ctx, newestFirst)
			virtuais, okV = list, err == nil
			return err
		}),
	)

	p.guard.Apply(gen, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.user = user
		if okT {
			p.territoriais = territoriais
		}
		if okV {
			p.virtuais = virtuais
		}
	})
	return err
}

func (p *Page) User() models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// View searches both lists with the same term. Territorial communities
// match on name and location, virtual ones on name and description.
func (p *Page) View(q string) View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v := View{
		Query:            q,
		Territoriais:     []TerritorialCard{},
		Virtuais:         []VirtualCard{},
		TotalTerritorios: len(p.territoriais),
		TotalVirtuais:    len(p.virtuais),
	}
	for _, c := range filter.Search(p.territoriais, q) {
		style, _ := c.TipoTerritorio.Style()
		v.Territoriais = append(v.Territoriais, TerritorialCard{Comunidade: c, Style: style})
	}
	for _, c := range filter.Search(p.virtuais, q) {
		v.Virtuais = append(v.Virtuais, VirtualCard{
			ComunidadeVirtual: c,
			TotalMembros:      len(c.Membros),
			Participa:         !p.user.IsGuest() && membership.Contains(c.Membros, p.user.Email),
		})
	}
	return v
}

// Participar toggles the current user's membership of a virtual community.
// The user's own list of communities follows on a best-effort basis.
func (p *Page) Participar(ctx context.Context, id models.ID) (*notice.Notice, error) {
	user := p.User()
	if user.IsGuest() {
		return notice.Fail("Faça login para participar de comunidades."), viewstate.NotAllowed("guest cannot join")
	}

	p.mu.RLock()
	c, ok := viewstate.FindByID(p.virtuais, id)
	p.mu.RUnlock()
	if !ok {
		var err error
		if c, err = p.client.ComunidadesVirtuais.Get(ctx, id); err != nil {
			p.log.Error("participar: community lookup failed", zap.String("comunidade_id", id.String()), zap.Error(err))
			return notice.Fail("Erro ao atualizar participação."), err
		}
	}

	membros, joined := membership.Toggle(c.Membros, user.Email)
	updated, err := p.client.ComunidadesVirtuais.Update(ctx, id, models.Patch{"membros": membros})
	if err != nil {
		p.log.Error("participar: update failed", zap.String("comunidade_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao atualizar participação."), err
	}

	var own []string
	if joined {
		own = membership.Add(user.ComunidadesParticipantes, id.String())
	} else {
		own = membership.Remove(user.ComunidadesParticipantes, id.String())
	}
	if _, err := p.client.Auth.UpdateMe(ctx, models.Patch{"comunidades_participantes": own}); err != nil {
		p.log.Warn("participar: user record not updated", zap.String("comunidade_id", id.String()), zap.Error(err))
	}

	gen := p.guard.Generation()
	if err := p.policy.Resync(ctx, p.Load, func() {
		p.guard.Apply(gen, func() {
			p.mu.Lock()
			p.virtuais = viewstate.ReplaceByID(p.virtuais, updated)
			p.user.ComunidadesParticipantes = own
			p.mu.Unlock()
		})
	}); err != nil {
		p.log.Warn("comunidades resync incomplete", zap.Error(err))
	}

	if joined {
		return notice.OK("Você agora participa de %s! 🌿", updated.Nome), nil
	}
	return notice.OK("Você saiu de %s.", updated.Nome), nil
}
