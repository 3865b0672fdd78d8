package territorios_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/raizes/internal/app/features/territorios"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/raizes/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func loadedPage(t *testing.T, b *testutil.Backend, policy viewstate.Policy) *territorios.Page {
	t.Helper()
	p := territorios.NewPage(b.Client, policy, zap.NewNop())
	p.Mount()
	t.Cleanup(p.Unmount)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func nomes(v territorios.View) []string {
	out := []string{}
	for _, c := range v.Comunidades {
		out = append(out, c.Nome)
	}
	return out
}

func ptr(f float64) *float64 { return &f }

func TestParseTipo(t *testing.T) {
	tests := []struct {
		in      string
		want    models.TerritoryType
		wantErr bool
	}{
		{"", "", false},
		{"todos", "", false},
		{" Quilombo ", models.TerritoryQuilombo, false},
		{"deserto", "", true},
	}
	for _, tt := range tests {
		got, err := territorios.ParseTipo(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTipo(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestView_PartitionThenSearch(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	tests := []struct {
		name string
		f    territorios.Filter
		want []string
	}{
		{"all", territorios.Filter{}, []string{"Periferia Viva", "Aldeia Tenonde Porã", "Quilombo Kalunga"}},
		{"by type", territorios.Filter{Tipo: models.TerritoryAldeia}, []string{"Aldeia Tenonde Porã"}},
		{"region name", territorios.Filter{Q: "vão de almas"}, []string{"Quilombo Kalunga"}},
		{"region city", territorios.Filter{Q: "parelheiros"}, []string{"Aldeia Tenonde Porã"}},
		{"region state", territorios.Filter{Q: "GO"}, []string{"Quilombo Kalunga"}},
		{"type excludes match", territorios.Filter{Tipo: models.TerritoryRio, Q: "kalunga"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, nomes(p.View(tt.f))); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestView_MarkersNeedBothCoordinates(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	v := p.View(territorios.Filter{Tipo: models.TerritoryQuilombo})
	if len(v.Marcadores) != 1 {
		t.Fatalf("markers = %d, want 1 (Engenho II has no coordinates)", len(v.Marcadores))
	}
	m := v.Marcadores[0]
	if m.Regiao.Nome != "Vão de Almas" || m.Latitude != -13.5 || m.ComunidadeID != "1" {
		t.Errorf("marker = %+v", m)
	}
	if v.Tipo != "quilombo" {
		t.Errorf("tipo = %q", v.Tipo)
	}
}

func TestView_LegendCoversEveryType(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	legend := p.View(territorios.Filter{Q: "nada"}).Legenda
	if len(legend) != len(models.TerritoryTypes()) {
		t.Fatalf("legend entries = %d", len(legend))
	}
	for i, t0 := range models.TerritoryTypes() {
		if legend[i].Type != t0 || legend[i].Color == "" {
			t.Errorf("legend[%d] = %+v", i, legend[i])
		}
	}
	if legend[0].Count != 1 || legend[7].Count != 0 {
		t.Errorf("counts: quilombo=%d montanha=%d", legend[0].Count, legend[7].Count)
	}
}

func TestMarcarRegioes(t *testing.T) {
	for _, policy := range []viewstate.Policy{viewstate.Refetch, viewstate.PatchLocal} {
		t.Run(string(policy), func(t *testing.T) {
			b := testutil.NewBackend(t, testutil.Seed())
			p := loadedPage(t, b, policy)

			regioes := []models.Regiao{
				{Nome: "  Pelourinho ", Cidade: "Salvador", Estado: "ba", Latitude: ptr(-12.97), Longitude: ptr(-38.51)},
				{Cidade: "Lauro de Freitas"},
			}
			n, err := p.MarcarRegioes(context.Background(), "3", regioes)
			if err != nil || n.IsError() {
				t.Fatalf("MarcarRegioes: %v %+v", err, n)
			}

			v := p.View(territorios.Filter{Q: "pelourinho"})
			if diff := cmp.Diff([]string{"Periferia Viva"}, nomes(v)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if len(v.Marcadores) != 1 || v.Marcadores[0].Regiao.Estado != "BA" {
				t.Errorf("markers = %+v", v.Marcadores)
			}
		})
	}
}

func TestMarcarRegioes_Invalid(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	p := loadedPage(t, b, viewstate.Refetch)

	tests := [][]models.Regiao{
		nil,
		{{Nome: "ok"}, {Estado: "SP"}},
		{{Nome: "   ", Cidade: " "}},
	}
	for _, regioes := range tests {
		n, err := p.MarcarRegioes(context.Background(), "1", regioes)
		if !errors.Is(err, viewstate.ErrInvalid) || !n.IsError() {
			t.Errorf("MarcarRegioes(%+v) = %v %+v, want ErrInvalid", regioes, err, n)
		}
	}
	if got := b.Record(t, "comunidades", "1")["regioes"].([]any); len(got) != 2 {
		t.Errorf("regions changed on invalid input: %v", got)
	}
}

func TestServeMarcarRegioes(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	h := territorios.NewHandler(b.Client, viewstate.Refetch, zap.NewNop())
	router := territorios.Routes(h)

	body := map[string]any{"regioes": []map[string]any{{"nome": "Nova", "latitude": 1.5, "longitude": 2.5}}}
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/2/regioes", body))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "marcados")

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/2/regioes", map[string]any{"regioes": []any{}}))
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/?tipo=deserto"))
	rec.AssertStatus(t, http.StatusBadRequest)
}
