package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/raizes/internal/app/features/dashboard"
	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/raizes/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func ids(cards []dashboard.SaberCard) []models.ID {
	out := make([]models.ID, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func loadedPage(t *testing.T, b *testutil.Backend, policy viewstate.Policy) *dashboard.Page {
	t.Helper()
	p := dashboard.NewPage(b.Client, policy, zap.NewNop())
	p.Mount()
	t.Cleanup(p.Unmount)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestView_NewestFirstAndCycleCounts(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	v := p.View(dashboard.Filter{})
	if diff := cmp.Diff([]models.ID{"2", "3", "1"}, ids(v.Saberes)); diff != "" {
		t.Errorf("feed order (-want +got):\n%s", diff)
	}
	if v.Tempo != models.CyclePresente || v.TotalSaberes != 3 || v.TotalComunidades != 3 {
		t.Errorf("unexpected header: tempo=%q saberes=%d comunidades=%d", v.Tempo, v.TotalSaberes, v.TotalComunidades)
	}

	counts := map[models.CyclicalTime]int{}
	for _, c := range v.Ciclos {
		counts[c.Tempo] = c.Count
	}
	want := map[models.CyclicalTime]int{
		models.CyclePresente: 3, models.CyclePlantar: 1, models.CycleColher: 1,
		models.CycleChuvas: 0, models.CycleSeca: 0, models.CycleLuaNova: 0,
		models.CycleLuaCheia: 1, models.CycleAncestral: 0,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("cycle counts (-want +got):\n%s", diff)
	}
}

func TestView_Filters(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	tests := []struct {
		name string
		f    dashboard.Filter
		want []models.ID
	}{
		{"presente is all", dashboard.Filter{Tempo: models.CyclePresente}, []models.ID{"2", "3", "1"}},
		{"by tempo", dashboard.Filter{Tempo: models.CyclePlantar}, []models.ID{"2"}},
		{"search tag", dashboard.Filter{Q: "ervas"}, []models.ID{"1"}},
		{"search folds case", dashboard.Filter{Q: "CANTOS"}, []models.ID{"3"}},
		{"tempo and search", dashboard.Filter{Tempo: models.CycleColher, Q: "ervas"}, []models.ID{}},
		{"no match", dashboard.Filter{Q: "inexistente"}, []models.ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(p.View(tt.f).Saberes)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestView_MarksOwnEndorsement(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	for _, c := range p.View(dashboard.Filter{}).Saberes {
		if want := c.ID == "3"; c.Valorizado != want {
			t.Errorf("saber %s: Valorizado = %v, want %v", c.ID, c.Valorizado, want)
		}
	}
}

func TestValorizar_ToggleTwiceRestores(t *testing.T) {
	for _, policy := range []viewstate.Policy{viewstate.Refetch, viewstate.PatchLocal} {
		t.Run(string(policy), func(t *testing.T) {
			b := testutil.NewBackend(t, testutil.Seed())
			p := loadedPage(t, b, policy)
			ctx := context.Background()

			n, err := p.Valorizar(ctx, "1")
			if err != nil || n.IsError() {
				t.Fatalf("first Valorizar: %v %+v", err, n)
			}
			card := p.View(dashboard.Filter{Q: "erva-cidreira"}).Saberes[0]
			if !card.Valorizado || card.Valorizadores != 2 {
				t.Errorf("after add: valorizado=%v count=%d", card.Valorizado, card.Valorizadores)
			}

			if _, err := p.Valorizar(ctx, "1"); err != nil {
				t.Fatalf("second Valorizar: %v", err)
			}
			rec := b.Record(t, "saberes", "1")
			if diff := cmp.Diff([]any{testutil.BiaEmail}, rec["valorizacoes"]); diff != "" {
				t.Errorf("valorizacoes after two toggles (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValorizar_GuestNotAllowed(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed(), apiclient.WithCurrentUser(testutil.GuestID))
	p := loadedPage(t, b, viewstate.Refetch)

	n, err := p.Valorizar(context.Background(), "1")
	if !errors.Is(err, viewstate.ErrNotAllowed) {
		t.Fatalf("err = %v, want ErrNotAllowed", err)
	}
	if !n.IsError() {
		t.Errorf("expected error notice, got %+v", n)
	}
}

func TestValorizar_WriteFailureKeepsSnapshot(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	b.Client.Saberes = testutil.FailWrites(b.Client.Saberes)
	p := loadedPage(t, b, viewstate.Refetch)

	before := p.View(dashboard.Filter{})
	n, err := p.Valorizar(context.Background(), "2")
	if err == nil || n.Level != notice.Error {
		t.Fatalf("expected failure, got err=%v notice=%+v", err, n)
	}
	if diff := cmp.Diff(before, p.View(dashboard.Filter{})); diff != "" {
		t.Errorf("snapshot changed on failure (-before +after):\n%s", diff)
	}
}

func TestValorizar_PatchLocalSkipsRefetch(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	counting := &testutil.Counting[models.Saber]{Collection: b.Client.Saberes}
	b.Client.Saberes = counting
	p := loadedPage(t, b, viewstate.PatchLocal)

	if _, err := p.Valorizar(context.Background(), "2"); err != nil {
		t.Fatalf("Valorizar: %v", err)
	}
	if counting.Lists != 1 {
		t.Errorf("List calls = %d, want 1", counting.Lists)
	}
}

func TestValorizar_OutsideFeed(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	_, err := p.Valorizar(context.Background(), "404")
	if !errors.Is(err, apiclient.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCompartilhar(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)
	p.ShareBase = "https://raizes.org/"

	link, n, err := p.Compartilhar(context.Background(), "3")
	if err != nil || n.IsError() {
		t.Fatalf("Compartilhar: %v %+v", err, n)
	}
	if link != "https://raizes.org/?saber=3" {
		t.Errorf("link = %q", link)
	}
	if got := b.Record(t, "saberes", "3")["compartilhamentos"]; got != float64(6) {
		t.Errorf("compartilhamentos = %v, want 6", got)
	}
}

func TestLoad_PartialFailure(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	b.Client.Comunidades = testutil.FailingCollection[models.Comunidade]{}
	p := dashboard.NewPage(b.Client, viewstate.Refetch, zap.NewNop())
	p.Mount()
	defer p.Unmount()

	if err := p.Load(context.Background()); !errors.Is(err, testutil.ErrBackendDown) {
		t.Fatalf("Load err = %v, want ErrBackendDown", err)
	}
	v := p.View(dashboard.Filter{})
	if len(v.Saberes) != 3 || len(v.Comunidades) != 0 {
		t.Errorf("saberes=%d comunidades=%d, want 3 and 0", len(v.Saberes), len(v.Comunidades))
	}
	if p.User().Email != testutil.AnaEmail {
		t.Errorf("user = %q", p.User().Email)
	}
}

func TestLoad_AfterUnmountIsDropped(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := dashboard.NewPage(b.Client, viewstate.Refetch, zap.NewNop())
	p.Mount()
	p.Unmount()

	_ = p.Load(context.Background())
	if v := p.View(dashboard.Filter{}); v.TotalSaberes != 0 {
		t.Errorf("unmounted page applied %d saberes", v.TotalSaberes)
	}
	if !p.User().IsGuest() {
		t.Error("unmounted page applied the user")
	}
}

func TestShareLink(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"", "/?saber=7"},
		{"https://raizes.org/", "https://raizes.org/?saber=7"},
		{"https://raizes.org/painel?", "https://raizes.org/painel?saber=7"},
	}
	for _, tt := range tests {
		if got := dashboard.ShareLink(tt.base, "7"); got != tt.want {
			t.Errorf("ShareLink(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}
