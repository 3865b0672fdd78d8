// internal/app/features/onboarding/page.go
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/inputval"
	"github.com/dalemusser/raizes/internal/app/system/membership"
	"github.com/dalemusser/raizes/internal/app/system/normalize"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var defaultCommunity = apiclient.ListOptions{Where: map[string]string{"comunidade_padrao": "true"}, Limit: 1}

// Page is the onboarding wizard view-model.
type Page struct {
	client *apiclient.Client
	policy viewstate.Policy
	log    *zap.Logger
	guard  viewstate.Guard

	mu     sync.RWMutex
	user   models.User
	padrao *models.ComunidadeVirtual
}

func NewPage(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Page {
	return &Page{client: client, policy: policy, log: logger, user: models.GuestUser()}
}

func (p *Page) Mount() { p.guard.Mount() }

func (p *Page) Unmount() { p.guard.Unmount() }

// Load reads the user first; the default community is only fetched for
// users who still have to onboard.
func (p *Page) Load(ctx context.Context) error {
	gen := p.guard.Generation()

	user := p.client.Auth.Me(ctx)
	var (
		padrao *models.ComunidadeVirtual
		err    error
	)
	if !user.OnboardingCompleto && !user.IsGuest() {
		var list []models.ComunidadeVirtual
		list, err = p.client.ComunidadesVirtuais.List(ctx, defaultCommunity)
		if err != nil {
			p.log.Error("onboarding: default community unavailable", zap.Error(err))
			err = fmt.Errorf("default community: %w", err)
		} else if len(list) > 0 {
			padrao = &list[0]
		}
	}

	p.guard.Apply(gen, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.user = user
		if err == nil {
			p.padrao = padrao
		}
	})
	return err
}

func (p *Page) User() models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// Completed reports whether the current user already onboarded.
func (p *Page) Completed() bool {
	return p.User().OnboardingCompleto
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v := View{
		Completo:     p.user.OnboardingCompleto,
		Participacao: ParticipantOptions(),
	}
	if p.padrao != nil {
		c := *p.padrao
		v.ComunidadePadrao = &c
	}
	for _, t := range models.TerritoryTypes() {
		style, _ := t.Style()
		v.Territorios = append(v.Territorios, style)
	}
	return v
}

// nullable turns a blank string into JSON null.
func nullable(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}

// Submit completes onboarding: it updates the user record, joins the
// default community and optionally creates a thematic community. The
// follow-up steps are all attempted; their failures are combined.
func (p *Page) Submit(ctx context.Context, f Form) (*notice.Notice, error) {
	p.mu.RLock()
	user, padrao := p.user, p.padrao
	p.mu.RUnlock()

	if user.IsGuest() {
		return notice.Fail("Faça login para concluir a integração."), viewstate.NotAllowed("guest cannot onboard")
	}
	if user.OnboardingCompleto {
		return notice.Infof("Sua integração já foi concluída."), nil
	}

	f.TipoParticipante = models.ParticipantType(normalize.Key(string(f.TipoParticipante)))
	f.TerritorioOrigem = normalize.Key(f.TerritorioOrigem)
	if !f.TipoParticipante.Traditional() {
		f.PovoOrigem, f.TerritorioOrigem = "", ""
	}
	res := inputval.Validate(f)
	if f.CriarComunidade {
		f.NovaComunidade.Nome = normalize.Name(f.NovaComunidade.Nome)
		for _, fe := range inputval.Validate(f.NovaComunidade).Errors {
			res.Add(fe.Field, fe.Message)
		}
	}
	if res.HasErrors() {
		return notice.Fail("%s", res.First()), viewstate.Invalid("%s", res.All())
	}

	comunidades := user.ComunidadesParticipantes
	if padrao != nil {
		comunidades = membership.Add(comunidades, padrao.ID.String())
	}
	patch := models.Patch{
		"tipo_participante":         f.TipoParticipante,
		"povo_origem":               nullable(f.PovoOrigem),
		"territorio_origem":         nullable(f.TerritorioOrigem),
		"localizacao":               nullable(f.Localizacao),
		"apresentacao":              nullable(f.Apresentacao),
		"onboarding_completo":       true,
		"comunidades_participantes": membership.Dedupe(comunidades),
	}
	updated, err := p.client.Auth.UpdateMe(ctx, patch)
	if err != nil {
		p.log.Error("onboarding: user update failed", zap.Error(err))
		return notice.Fail("Erro ao salvar seus dados."), err
	}

	var errs error
	if padrao != nil {
		membros := membership.Add(padrao.Membros, user.Email)
		if _, err := p.client.ComunidadesVirtuais.Update(ctx, padrao.ID, models.Patch{"membros": membros}); err != nil {
			p.log.Error("onboarding: joining default community failed", zap.String("comunidade_id", padrao.ID.String()), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("join default community: %w", err))
		}
	}
	if f.CriarComunidade {
		nova := models.ComunidadeVirtual{
			Nome:            f.NovaComunidade.Nome,
			Descricao:       strings.TrimSpace(f.NovaComunidade.Descricao),
			Tipo:            models.VirtualKindTematica,
			CriadorEmail:    user.Email,
			Membros:         []string{user.Email},
			TemasPrincipais: membership.Dedupe(f.NovaComunidade.Temas),
		}
		if _, err := p.client.ComunidadesVirtuais.Create(ctx, nova); err != nil {
			p.log.Error("onboarding: creating community failed", zap.String("nome", nova.Nome), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("create community: %w", err))
		}
	}

	gen := p.guard.Generation()
	if rerr := p.policy.Resync(ctx, p.Load, func() {
		p.guard.Apply(gen, func() {
			p.mu.Lock()
			p.user = updated
			p.mu.Unlock()
		})
	}); rerr != nil {
		p.log.Warn("onboarding resync incomplete", zap.Error(rerr))
	}

	if errs != nil {
		return notice.Fail("Seu perfil foi salvo, mas nem todas as etapas foram concluídas."), errs
	}
	return notice.OK("Bem-vinda, bem-vindo à Raízes! 🌱"), nil
}
