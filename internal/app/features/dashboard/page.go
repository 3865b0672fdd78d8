// internal/app/features/dashboard/page.go
package dashboard

import (
	"context"
	"errors"
	"net/url"
	"strings"
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

// Feed sizes requested from the backend.
const (
	SaberesLimit     = 20
	ComunidadesLimit = 10
)

var (
	saberesQuery     = apiclient.ListOptions{Sort: "-created_date", Limit: SaberesLimit}
	comunidadesQuery = apiclient.ListOptions{Sort: "-created_date", Limit: ComunidadesLimit}
)

// Page is the dashboard view-model: the current user, the latest saberes
// and the latest communities.
type Page struct {
	// ShareBase is the public address share links point at.
	ShareBase string

	client *apiclient.Client
	policy viewstate.Policy
	log    *zap.Logger
	guard  viewstate.Guard

	mu          sync.RWMutex
	user        models.User
	saberes     []models.Saber
	comunidades []models.Comunidade
}

// NewPage constructs a dashboard Page.
func NewPage(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Page {
	return &Page{
		client: client,
		policy: policy,
		log:    logger,
		user:   models.GuestUser(),
	}
}

// Mount marks the page live. Unmount drops any result still in flight.
func (p *Page) Mount() { p.guard.Mount() }
func (p *Page) Unmount() { p.guard.Unmount() }

// Load fetches the user, saberes and communities concurrently. A failed
// part keeps its previous snapshot; the combined failure is returned.
func (p *Page) Load(ctx context.Context) error {
	gen := p.guard.Generation()

	var (
		user        models.User
		saberes     []models.Saber
		comunidades []models.Comunidade
		okS, okC    bool
	)
	err := fanout.Join(ctx, p.log,
		fanout.Do("me", func(ctx context.Context) error {
			user = p.client.Auth.Me(ctx)
			return nil
		}),
		fanout.Do("saberes", func(ctx context.Context) error {
			list, err := p.client.Saberes.List(ctx, saberesQuery)
			saberes, okS = list, err == nil
			return err
		}),
		fanout.Do("comunidades", func(ctx context.Context) error {
			list, err := p.client.Comunidades.List(ctx, comunidadesQuery)
			comunidades, okC = list, err == nil
			return err
		}),
	)

	p.guard.Apply(gen, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.user = user
		if okS {
			p.saberes = saberes
		}
		if okC {
			p.comunidades = comunidades
		}
	})
	return err
}

// User returns the current user snapshot.
func (p *Page) User() models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// View derives the feed for f from the full snapshot.
func (p *Page) View(f Filter) View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tempo := f.Tempo
	if tempo == "" {
		tempo = models.CyclePresente
	}
	byTempo := filter.Where(p.saberes, func(s models.Saber) bool {
		return tempo == models.CyclePresente || s.TempoCircular == tempo
	})
	matched := filter.Search(byTempo, f.Q)

	cards := make([]SaberCard, 0, len(matched))
	for _, s := range matched {
		cards = append(cards, p.card(s))
	}

	return View{
		Tempo:            tempo,
		TempoLabel:       tempo.Label(),
		Query:            f.Q,
		Saberes:          cards,
		Ciclos:           p.cycles(),
		Comunidades:      append([]models.Comunidade(nil), p.comunidades...),
		TotalSaberes:     len(p.saberes),
		TotalComunidades: len(p.comunidades),
	}
}

func (p *Page) card(s models.Saber) SaberCard {
	style, _ := s.TipoTerritorio.Style()
	return SaberCard{
		Saber:         s,
		Style:         style,
		TempoLabel:    s.TempoCircular.Label(),
		Valorizado:    !p.user.IsGuest() && membership.Contains(s.Valorizacoes, p.user.Email),
		Valorizadores: len(s.Valorizacoes),
	}
}

// cycles counts saberes per cyclical time; presente counts them all.
func (p *Page) cycles() []CycleCount {
	times := models.CyclicalTimes()
	counts := filter.GroupCount(p.saberes, func(s models.Saber) models.CyclicalTime {
		return s.TempoCircular
	}, times)

	out := make([]CycleCount, 0, len(times))
	for _, t := range times {
		n := counts[t]
		if t == models.CyclePresente {
			n = len(p.saberes)
		}
		out = append(out, CycleCount{Tempo: t, Label: t.Label(), Count: n})
	}
	return out
}

// lookup finds a saber in the snapshot, falling back to the backend for
// records outside the loaded feed.
func (p *Page) lookup(ctx context.Context, id models.ID) (models.Saber, error) {
	p.mu.RLock()
	s, ok := viewstate.FindByID(p.saberes, id)
	p.mu.RUnlock()
	if ok {
		return s, nil
	}
	return p.client.Saberes.Get(ctx, id)
}

// Valorizar toggles the current user's endorsement of a saber.
func (p *Page) Valorizar(ctx context.Context, id models.ID) (*notice.Notice, error) {
	user := p.User()
	if user.IsGuest() {
		return notice.Fail("Faça login para valorizar saberes."), viewstate.NotAllowed("guest cannot endorse")
	}

	s, err := p.lookup(ctx, id)
	if err != nil {
		p.log.Error("valorizar: saber lookup failed", zap.String("saber_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao valorizar saber."), err
	}

	next, added := membership.Toggle(s.Valorizacoes, user.Email)
	updated, err := p.client.Saberes.Update(ctx, id, models.Patch{"valorizacoes": next})
	if err != nil {
		p.log.Error("valorizar: update failed", zap.String("saber_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao valorizar saber."), err
	}
	p.resync(ctx, updated)

	if added {
		return notice.OK("Saber valorizado! 🌱"), nil
	}
	return notice.OK("Valorização removida."), nil
}

// Compartilhar bumps the share counter of a saber and returns its link.
func (p *Page) Compartilhar(ctx context.Context, id models.ID) (string, *notice.Notice, error) {
	s, err := p.lookup(ctx, id)
	if err != nil {
		p.log.Error("compartilhar: saber lookup failed", zap.String("saber_id", id.String()), zap.Error(err))
		return "", notice.Fail("Erro ao compartilhar saber."), err
	}

	updated, err := p.client.Saberes.Update(ctx, id, models.Patch{"compartilhamentos": s.Compartilhamentos + 1})
	if err != nil {
		p.log.Error("compartilhar: update failed", zap.String("saber_id", id.String()), zap.Error(err))
		return "", notice.Fail("Erro ao compartilhar saber."), err
	}
	p.resync(ctx, updated)

	return ShareLink(p.ShareBase, id), notice.OK("Link pronto! Compartilhe este saber ancestral 🌿"), nil
}

// ShareLink is the public address of a saber.
func ShareLink(base string, id models.ID) string {
	if base == "" {
		base = "/"
	}
	base = strings.TrimSuffix(base, "?")
	return base + "?saber=" + url.QueryEscape(id.String())
}

// resync brings the snapshot in line after a write. A failed refetch is
// logged by Load and does not undo the write.
func (p *Page) resync(ctx context.Context, updated models.Saber) {
	gen := p.guard.Generation()
	err := p.policy.Resync(ctx, p.Load, func() {
		p.guard.Apply(gen, func() {
			p.mu.Lock()
			p.saberes = viewstate.ReplaceByID(p.saberes, updated)
			p.mu.Unlock()
		})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		p.log.Warn("dashboard resync incomplete", zap.Error(err))
	}
}
