package main

import (
	"context"
	"fmt"

	"github.com/dalemusser/raizes/internal/app/features/dashboard"
	"github.com/dalemusser/raizes/internal/app/system/normalize"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/spf13/cobra"
)

func (c *cli) saberesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saberes",
		Short: "Círculo de Saberes",
	}

	var tempo, q string
	list := &cobra.Command{
		Use:   "list",
		Short: "List knowledge entries, optionally by cyclical time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseCyclicalTime(normalize.Key(tempo))
			if err != nil {
				return fmt.Errorf("tempo desconhecido %q", tempo)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Load())
			defer cancel()

			p := dashboard.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			view := p.View(dashboard.Filter{Tempo: t, Q: q})
			if c.output != outputTable {
				return c.encode(view)
			}
			tbl := newTable(fmt.Sprintf("Círculo de Saberes · %s", view.TempoLabel),
				"ID", "Título", "Tempo", "Território", "Valorizações", "Compart.", "Seu")
			for _, s := range view.Saberes {
				tbl.AddRow(s.ID.String(), clip(s.Titulo, 40), s.TempoLabel, s.Style.Label,
					fmt.Sprint(s.Valorizadores), fmt.Sprint(s.Compartilhamentos), mark(s.Valorizado))
				tbl.ColorLast(s.Style.Color)
			}
			tbl.Footer = fmt.Sprintf("%d saberes, %d comunidades", view.TotalSaberes, view.TotalComunidades)
			return c.table(tbl)
		},
	}
	list.Flags().StringVar(&tempo, "tempo", "", "cyclical time (presente, plantar, colher, chuvas, seca, lua_nova, lua_cheia, ancestrais)")
	list.Flags().StringVar(&q, "q", "", "search term")

	valorizar := &cobra.Command{
		Use:   "valorizar ID",
		Short: "Toggle your appreciation of a knowledge entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Write())
			defer cancel()

			p := dashboard.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			n, err := p.Valorizar(ctx, models.ID(args[0]))
			if err != nil {
				return c.fail(n, err)
			}
			return c.done(n, nil)
		},
	}

	var shareBase string
	compartilhar := &cobra.Command{
		Use:   "compartilhar ID",
		Short: "Count a share and print the share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Write())
			defer cancel()

			p := dashboard.NewPage(c.client, c.policy(), c.log)
			p.ShareBase = shareBase
			c.open(ctx, p)
			defer p.Unmount()

			link, n, err := p.Compartilhar(ctx, models.ID(args[0]))
			if err != nil {
				return c.fail(n, err)
			}
			return c.done(n, map[string]any{"share_link": link})
		},
	}
	compartilhar.Flags().StringVar(&shareBase, "base", envOr("RAIZES_PUBLIC_BASE_URL", ""), "public URL the share link starts with")

	cmd.AddCommand(list, valorizar, compartilhar)
	return cmd
}
