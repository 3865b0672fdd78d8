package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixture identities.
const (
	AnaEmail = "ana@raizes.org"
	BiaEmail = "bia@raizes.org"
	NovoID   = "2"
	GuestID  = "99"
)

// Seed returns a fresh copy of the standard fixture data: two users (Ana,
// onboarded, id 1; Novo, not onboarded, id 2), three saberes, three
// territorial communities, two virtual communities and four letters.
func Seed() map[string][]store.Record {
	return map[string][]store.Record{
		"usuarios": {
			{
				"id": 1, "email": AnaEmail, "full_name": "Ana Guarani",
				"tipo_participante": "povo_tradicional", "onboarding_completo": true,
				"povo_origem": "Guarani Mbya",
			},
			{
				"id": 2, "email": "novo@raizes.org", "full_name": "Novo Participante",
				"tipo_participante": "simpatizante", "onboarding_completo": false,
			},
		},
		"saberes": {
			{
				"id": 1, "titulo": "Chá de erva-cidreira", "guardiao": "Dona Maria",
				"narrativa": "Receita passada pelas avós para acalmar.",
				"tipo": "medicina_tradicional", "tipo_territorio": "quilombo",
				"tempo_circular": "lua_cheia", "tags": []string{"ervas", "cura"},
				"valorizacoes": []string{BiaEmail}, "compartilhamentos": 2,
				"created_date": "2024-01-10T10:00:00Z",
			},
			{
				"id": 2, "titulo": "Plantio na lua nova", "guardiao": "Seu João",
				"narrativa": "Quando a lua some, a semente desperta.",
				"tipo": "agricultura_ancestral", "tipo_territorio": "aldeia",
				"tempo_circular": "plantar", "tags": []string{"sementes"},
				"valorizacoes": []string{}, "compartilhamentos": 0,
				"created_date": "2024-03-05T10:00:00Z",
			},
			{
				"id": 3, "titulo": "Cantos de colheita", "guardiao": "Mestre Zé",
				"narrativa": "Cantos que acompanham o trabalho no roçado.",
				"tipo": "musica_oral", "tipo_territorio": "campo",
				"tempo_circular": "colher", "tags": []string{"música"},
				"valorizacoes": []string{AnaEmail}, "compartilhamentos": 5,
				"created_date": "2024-02-20T10:00:00Z",
			},
		},
		"comunidades": {
			{
				"id": 1, "nome": "Quilombo Kalunga", "localizacao": "Cavalcante, GO",
				"tipo_territorio": "quilombo", "liderancas": []string{"Dona Procópia"},
				"regioes": []map[string]any{
					{"nome": "Vão de Almas", "cidade": "Cavalcante", "estado": "GO", "latitude": -13.5, "longitude": -47.4},
					{"nome": "Engenho II", "cidade": "Cavalcante", "estado": "GO"},
				},
				"created_date": "2024-01-01T10:00:00Z",
			},
			{
				"id": 2, "nome": "Aldeia Tenonde Porã", "localizacao": "São Paulo, SP",
				"tipo_territorio": "aldeia",
				"regioes": []map[string]any{
					{"nome": "Tenonde Porã", "cidade": "Parelheiros", "estado": "SP", "latitude": -23.9, "longitude": -46.7},
				},
				"created_date": "2024-02-01T10:00:00Z",
			},
			{
				"id": 3, "nome": "Periferia Viva", "localizacao": "Salvador, BA",
				"tipo_territorio": "periferia", "created_date": "2024-03-01T10:00:00Z",
			},
		},
		"comunidades_virtuais": {
			{
				"id": 1, "nome": "Rede Raízes", "descricao": "Comunidade de todos os participantes.",
				"tipo": "geral", "comunidade_padrao": true, "membros": []string{BiaEmail},
			},
			{
				"id": 2, "nome": "Guardiões das Sementes", "descricao": "Troca de sementes crioulas.",
				"tipo": "tematica", "criador_email": AnaEmail, "membros": []string{AnaEmail},
				"temas_principais": []string{"sementes"},
			},
		},
		"cartas": {
			{
				"id": 1, "titulo": "Pela demarcação já", "conteudo": "<p>Terra é vida.</p>",
				"autor_nome": "Ana Guarani", "autor_email": AnaEmail,
				"status": "publicada", "visibilidade": "publica", "data_publicacao": "2024-04-01",
				"temas": []string{"território"}, "apoios": []string{BiaEmail},
			},
			{
				"id": 2, "titulo": "Rascunho sobre a água", "conteudo": "<p>Rios livres.</p>",
				"autor_nome": "Ana Guarani", "autor_email": AnaEmail,
				"status": "rascunho", "visibilidade": "publica", "apoios": []string{},
			},
			{
				"id": 3, "titulo": "Carta das sementes", "conteudo": "<p>Sementes são memória.</p>",
				"autor_nome": "Bia", "autor_email": BiaEmail,
				"status": "publicada", "visibilidade": "publica", "data_publicacao": "2024-05-01",
				"temas": []string{"sementes"}, "apoios": []string{AnaEmail, "caio@raizes.org"},
			},
			{
				"id": 4, "titulo": "Carta interna", "conteudo": "<p>Só para a comunidade.</p>",
				"autor_nome": "Bia", "autor_email": BiaEmail,
				"status": "publicada", "visibilidade": "comunidade", "data_publicacao": "2024-05-02",
				"apoios": []string{},
			},
		},
	}
}
