package comunidades_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/raizes/internal/app/features/comunidades"
	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/raizes/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func loadedPage(t *testing.T, b *testutil.Backend) *comunidades.Page {
	t.Helper()
	p := comunidades.NewPage(b.Client, viewstate.Refetch, zap.NewNop())
	p.Mount()
	t.Cleanup(p.Unmount)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func names(v comunidades.View) (territoriais, virtuais []string) {
	territoriais, virtuais = []string{}, []string{}
	for _, c := range v.Territoriais {
		territoriais = append(territoriais, c.Nome)
	}
	for _, c := range v.Virtuais {
		virtuais = append(virtuais, c.Nome)
	}
	return territoriais, virtuais
}

func TestView_Search(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b)

	tests := []struct {
		q            string
		territoriais []string
		virtuais     []string
	}{
		{"", []string{"Periferia Viva", "Aldeia Tenonde Porã", "Quilombo Kalunga"}, []string{"Rede Raízes", "Guardiões das Sementes"}},
		{"salvador", []string{"Periferia Viva"}, []string{}},
		{"sementes", []string{}, []string{"Guardiões das Sementes"}},
		{"participantes", []string{}, []string{"Rede Raízes"}},
		{"nada", []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			gotT, gotV := names(p.View(tt.q))
			if diff := cmp.Diff(tt.territoriais, gotT); diff != "" {
				t.Errorf("territoriais (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.virtuais, gotV); diff != "" {
				t.Errorf("virtuais (-want +got):\n%s", diff)
			}
		})
	}
}

func TestView_MembersAndStyle(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b)
	v := p.View("")

	if v.Territoriais[2].Style.Type != models.TerritoryQuilombo || v.Territoriais[2].Style.Emoji == "" {
		t.Errorf("style = %+v", v.Territoriais[2].Style)
	}
	if v.Virtuais[1].TotalMembros != 1 || !v.Virtuais[1].Participa {
		t.Errorf("Guardiões card = %+v", v.Virtuais[1])
	}
	if v.Virtuais[0].Participa {
		t.Error("Ana should not be in Rede Raízes yet")
	}
}

func TestParticipar_ToggleTwiceRestores(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b)
	ctx := context.Background()

	if _, err := p.Participar(ctx, "1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if v := p.View("rede"); !v.Virtuais[0].Participa || v.Virtuais[0].TotalMembros != 2 {
		t.Errorf("after join: %+v", v.Virtuais[0])
	}
	if got := b.Record(t, "usuarios", "1")["comunidades_participantes"]; !cmp.Equal(got, []any{"1"}) {
		t.Errorf("comunidades_participantes = %v", got)
	}

	if _, err := p.Participar(ctx, "1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if got := b.Record(t, "comunidades_virtuais", "1")["membros"]; !cmp.Equal(got, []any{testutil.BiaEmail}) {
		t.Errorf("membros after two toggles = %v", got)
	}
}

func TestParticipar_Guest(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed(), apiclient.WithCurrentUser(testutil.GuestID))
	p := loadedPage(t, b)

	if _, err := p.Participar(context.Background(), "1"); !errors.Is(err, viewstate.ErrNotAllowed) {
		t.Errorf("err = %v, want ErrNotAllowed", err)
	}
}

func TestParticipar_WriteFailure(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	b.Client.ComunidadesVirtuais = testutil.FailWrites(b.Client.ComunidadesVirtuais)
	p := loadedPage(t, b)

	n, err := p.Participar(context.Background(), "1")
	if err == nil || !n.IsError() {
		t.Fatalf("expected failure, got %v %+v", err, n)
	}
	if p.View("").Virtuais[0].Participa {
		t.Error("snapshot changed after failed write")
	}
}

func TestServeList(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	h := comunidades.NewHandler(b.Client, viewstate.Refetch, zap.NewNop())

	rec := testutil.NewRecorder()
	comunidades.Routes(h).ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/?q=kalunga"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Quilombo Kalunga")

	got := testutil.DecodeJSON[struct {
		Territoriais []map[string]any `json:"territoriais"`
	}](t, rec)
	if len(got.Territoriais) != 1 {
		t.Errorf("territoriais = %d, want 1", len(got.Territoriais))
	}
}

func TestServeParticipar_LoadFailure(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	b.Client.ComunidadesVirtuais = testutil.FailingCollection[models.ComunidadeVirtual]{}
	h := comunidades.NewHandler(b.Client, viewstate.Refetch, zap.NewNop())

	rec := testutil.NewRecorder()
	comunidades.Routes(h).ServeHTTP(rec, testutil.NewRequest(http.MethodPost, "/virtuais/1/participar"))
	rec.AssertStatus(t, http.StatusBadGateway)
	rec.AssertContains(t, `"level":"error"`)
}
