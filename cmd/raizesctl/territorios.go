package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/raizes/internal/app/features/territorios"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/spf13/cobra"
)

func (c *cli) territoriosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "territorios",
		Short: "Territory map",
	}

	var tipo, q string
	list := &cobra.Command{
		Use:   "list",
		Short: "List territories and their mapped regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := territorios.ParseTipo(tipo)
			if err != nil {
				return fmt.Errorf("tipo de território desconhecido %q", tipo)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Load())
			defer cancel()

			p := territorios.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			view := p.View(territorios.Filter{Tipo: t, Q: q})
			if c.output != outputTable {
				return c.encode(view)
			}

			tbl := newTable("Mapa de Territórios", "ID", "Comunidade", "Território", "Regiões")
			for _, card := range view.Comunidades {
				names := make([]string, 0, len(card.Regioes))
				for _, r := range card.Regioes {
					names = append(names, regionLabel(r.Nome, r.Cidade, r.Estado))
				}
				tbl.AddRow(card.ID.String(), clip(card.Nome, 40), card.Style.Emoji+" "+card.Style.Label, clip(strings.Join(names, "; "), 60))
				tbl.ColorLast(card.Style.Color)
			}
			tbl.Footer = fmt.Sprintf("%d encontradas, %d marcadores no mapa", view.Encontrados, len(view.Marcadores))
			if err := c.table(tbl); err != nil {
				return err
			}

			legend := make([]string, 0, len(view.Legenda))
			for _, e := range view.Legenda {
				if e.Count > 0 {
					legend = append(legend, fmt.Sprintf("%s %s (%d)", e.Emoji, e.Label, e.Count))
				}
			}
			if len(legend) > 0 {
				fmt.Fprintln(c.out, mutedStyle.Render("Legenda: "+strings.Join(legend, " · ")))
			}
			return nil
		},
	}
	list.Flags().StringVar(&tipo, "tipo", "", "territory type (todos, quilombo, aldeia, periferia, ...)")
	list.Flags().StringVar(&q, "q", "", "search term")

	cmd.AddCommand(list)
	return cmd
}

func regionLabel(nome, cidade, estado string) string {
	place := cidade
	if estado != "" {
		place = strings.TrimPrefix(place+", "+estado, ", ")
	}
	switch {
	case nome == "":
		return place
	case place == "":
		return nome
	}
	return nome + " (" + place + ")"
}
