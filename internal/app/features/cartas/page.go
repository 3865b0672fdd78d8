// internal/app/features/cartas/page.go
package cartas

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/fanout"
	"github.com/dalemusser/raizes/internal/app/system/filter"
	"github.com/dalemusser/raizes/internal/app/system/htmlsanitize"
	"github.com/dalemusser/raizes/internal/app/system/inputval"
	"github.com/dalemusser/raizes/internal/app/system/membership"
	"github.com/dalemusser/raizes/internal/app/system/normalize"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// dateLayout is the format of data_publicacao.
const dateLayout = "2006-01-02"

// ParseTab accepts "", "todas" and "minhas".
func ParseTab(s string) (string, bool) {
	switch s = normalize.Key(s); s {
	case "", TabTodas:
		return TabTodas, true
	case TabMinhas:
		return TabMinhas, true
	}
	return "", false
}

// Page is the open letters view-model.
type Page struct {
	client *apiclient.Client
	policy viewstate.Policy
	log    *zap.Logger
	guard  viewstate.Guard
	now    func() time.Time

	mu     sync.RWMutex
	user   models.User
	cartas []models.CartaAberta
}

func NewPage(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Page {
	return &Page{
		client: client,
		policy: policy,
		log:    logger,
		now:    time.Now,
		user:   models.GuestUser(),
	}
}

func (p *Page) Mount() { p.guard.Mount() }

func (p *Page) Unmount() { p.guard.Unmount() }

// Load fetches the user and every letter. Partitions are derived in View.
func (p *Page) Load(ctx context.Context) error {
	gen := p.guard.Generation()

	var (
		user   models.User
		cartas []models.CartaAberta
		ok     bool
	)
	err := fanout.Join(ctx, p.log,
		fanout.Do("me", func(ctx context.Context) error {
			user = p.client.Auth.Me(ctx)
			return nil
		}),
		fanout.Do("cartas", func(ctx context.Context) error {
			list, err := p.client.Cartas.List(ctx, apiclient.ListOptions{Sort: "-created_date"})
			cartas, ok = list, err == nil
			return err
		}),
	)

	p.guard.Apply(gen, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.user = user
		if ok {
			p.cartas = cartas
		}
	})
	return err
}

func (p *Page) User() models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// authoredBy reports whether u wrote c. Guests author nothing.
func authoredBy(c models.CartaAberta, u models.User) bool {
	return !u.IsGuest() && c.AutorEmail == u.Email
}

// View partitions the full collection by tab, then applies the search.
func (p *Page) View(f Filter) View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tab, ok := ParseTab(f.Tab)
	if !ok {
		tab = TabTodas
	}

	publicas := filter.Where(p.cartas, models.CartaAberta.PubliclyListed)
	minhas := filter.Where(p.cartas, func(c models.CartaAberta) bool { return authoredBy(c, p.user) })

	part := publicas
	if tab == TabMinhas {
		part = minhas
	}
	matched := filter.Search(part, f.Q)

	v := View{
		Tab:    tab,
		Query:  f.Q,
		Cartas: make([]CartaCard, 0, len(matched)),
		Stats:  Stats{Publicadas: len(publicas), Minhas: len(minhas)},
	}
	for _, c := range publicas {
		v.Stats.Apoios += len(c.Apoios)
	}
	for _, c := range matched {
		v.Cartas = append(v.Cartas, CartaCard{
			CartaAberta: c,
			Resumo:      htmlsanitize.Excerpt(c.Conteudo, ExcerptLength),
			Apoiadores:  len(c.Apoios),
			Apoiada:     !p.user.IsGuest() && membership.Contains(c.Apoios, p.user.Email),
			Propria:     authoredBy(c, p.user),
		})
	}
	return v
}

func (p *Page) lookup(ctx context.Context, id models.ID) (models.CartaAberta, error) {
	p.mu.RLock()
	c, ok := viewstate.FindByID(p.cartas, id)
	p.mu.RUnlock()
	if ok {
		return c, nil
	}
	return p.client.Cartas.Get(ctx, id)
}

// Apoiar toggles the current user's support of a published letter.
// Authors cannot support their own letters.
func (p *Page) Apoiar(ctx context.Context, id models.ID) (*notice.Notice, error) {
	user := p.User()
	if user.IsGuest() {
		return notice.Fail("Faça login para apoiar cartas."), viewstate.NotAllowed("guest cannot support")
	}

	c, err := p.lookup(ctx, id)
	if err != nil {
		p.log.Error("apoiar: letter lookup failed", zap.String("carta_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao apoiar carta."), err
	}
	if authoredBy(c, user) {
		return notice.Fail("Você não pode apoiar a própria carta."), viewstate.NotAllowed("author cannot support own letter")
	}
	if !c.Published() {
		return notice.Fail("Só cartas publicadas recebem apoio."), viewstate.NotAllowed("letter %s is not published", id)
	}

	apoios, added := membership.Toggle(c.Apoios, user.Email)
	updated, err := p.client.Cartas.Update(ctx, id, models.Patch{"apoios": apoios})
	if err != nil {
		p.log.Error("apoiar: update failed", zap.String("carta_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao apoiar carta."), err
	}
	p.resync(ctx, func() { p.cartas = viewstate.ReplaceByID(p.cartas, updated) })

	if added {
		return notice.OK("Apoio registrado! ✊"), nil
	}
	return notice.OK("Apoio removido."), nil
}

// Save creates or edits a letter. Publishing stamps data_publicacao the
// first time only; later edits never move it.
func (p *Page) Save(ctx context.Context, d Draft, publish bool) (models.CartaAberta, *notice.Notice, error) {
	user := p.User()
	if user.IsGuest() {
		return models.CartaAberta{}, notice.Fail("Faça login para escrever cartas."), viewstate.NotAllowed("guest cannot write")
	}

	d.Titulo = normalize.Name(d.Titulo)
	d.ComunidadeOrigem = strings.TrimSpace(d.ComunidadeOrigem)
	d.TerritorioOrigem = strings.TrimSpace(d.TerritorioOrigem)
	d.Visibilidade = models.Visibility(normalize.Key(string(d.Visibilidade)))
	if res := inputval.Validate(d); res.HasErrors() {
		return models.CartaAberta{}, notice.Fail("%s", res.First()), viewstate.Invalid("%s", res.All())
	}
	if d.Visibilidade == "" {
		d.Visibilidade = models.VisibilityPublic
	}
	conteudo := d.Conteudo
	if htmlsanitize.IsPlainText(conteudo) {
		conteudo = htmlsanitize.PlainTextToHTML(conteudo)
	}
	conteudo = htmlsanitize.Sanitize(conteudo)
	destinatarios := membership.Dedupe(d.Destinatarios)
	temas := membership.Dedupe(d.Temas)
	today := p.now().Format(dateLayout)

	var (
		saved models.CartaAberta
		err   error
	)
	if d.ID.IsZero() {
		c := models.CartaAberta{
			Titulo:           d.Titulo,
			Conteudo:         conteudo,
			AutorNome:        user.FullName,
			AutorEmail:       user.Email,
			ComunidadeOrigem: d.ComunidadeOrigem,
			TerritorioOrigem: d.TerritorioOrigem,
			Destinatarios:    destinatarios,
			Temas:            temas,
			Visibilidade:     d.Visibilidade,
			Status:           models.LetterDraft,
			Apoios:           []string{},
		}
		if publish {
			c.Status = models.LetterPublished
			c.DataPublicacao = today
		}
		saved, err = p.client.Cartas.Create(ctx, c)
	} else {
		existing, lerr := p.lookup(ctx, d.ID)
		if lerr != nil {
			p.log.Error("save: letter lookup failed", zap.String("carta_id", d.ID.String()), zap.Error(lerr))
			return models.CartaAberta{}, notice.Fail("Erro ao salvar carta."), lerr
		}
		if !authoredBy(existing, user) {
			return models.CartaAberta{}, notice.Fail("Só a autora ou o autor pode editar esta carta."), viewstate.NotAllowed("not the author")
		}
		patch := models.Patch{
			"titulo":            d.Titulo,
			"conteudo":          conteudo,
			"comunidade_origem": d.ComunidadeOrigem,
			"territorio_origem": d.TerritorioOrigem,
			"destinatarios":     destinatarios,
			"temas":             temas,
			"visibilidade":      d.Visibilidade,
		}
		if publish {
			patch["status"] = models.LetterPublished
			if existing.DataPublicacao == "" {
				patch["data_publicacao"] = today
			}
		}
		saved, err = p.client.Cartas.Update(ctx, d.ID, patch)
	}
	if err != nil {
		p.log.Error("save: write failed", zap.String("carta_id", d.ID.String()), zap.Error(err))
		return models.CartaAberta{}, notice.Fail("Erro ao salvar carta."), err
	}

	p.resync(ctx, func() {
		if d.ID.IsZero() {
			p.cartas = append([]models.CartaAberta{saved}, p.cartas...)
			return
		}
		p.cartas = viewstate.ReplaceByID(p.cartas, saved)
	})

	if publish {
		return saved, notice.OK("Carta publicada! Sua voz ecoa pelos territórios. 📜"), nil
	}
	return saved, notice.OK("Rascunho salvo."), nil
}

// Delete removes a letter the current user wrote. confirmed must be true.
func (p *Page) Delete(ctx context.Context, id models.ID, confirmed bool) (*notice.Notice, error) {
	if !confirmed {
		return notice.Fail("Confirme a exclusão da carta."), viewstate.Invalid("delete not confirmed")
	}
	user := p.User()
	c, err := p.lookup(ctx, id)
	if err != nil {
		p.log.Error("delete: letter lookup failed", zap.String("carta_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao excluir carta."), err
	}
	if !authoredBy(c, user) {
		return notice.Fail("Só a autora ou o autor pode excluir esta carta."), viewstate.NotAllowed("not the author")
	}

	if err := p.client.Cartas.Delete(ctx, id); err != nil {
		p.log.Error("delete: backend failed", zap.String("carta_id", id.String()), zap.Error(err))
		return notice.Fail("Erro ao excluir carta."), err
	}
	p.resync(ctx, func() { p.cartas = viewstate.RemoveByID(p.cartas, id) })
	return notice.OK("Carta excluída."), nil
}

// resync applies patch under the page lock (PatchLocal) or refetches.
func (p *Page) resync(ctx context.Context, patch func()) {
	gen := p.guard.Generation()
	if err := p.policy.Resync(ctx, p.Load, func() {
		p.guard.Apply(gen, func() {
			p.mu.Lock()
			patch()
			p.mu.Unlock()
		})
	}); err != nil {
		p.log.Warn("cartas resync incomplete", zap.Error(err))
	}
}
