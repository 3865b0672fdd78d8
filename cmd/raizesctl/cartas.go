package main

import (
	"context"
	"fmt"

	"github.com/dalemusser/raizes/internal/app/features/cartas"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/spf13/cobra"
)

func (c *cli) cartasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cartas",
		Short: "Cartas Abertas",
	}

	var tab, q string
	list := &cobra.Command{
		Use:   "list",
		Short: "List open letters (todas or minhas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := cartas.ParseTab(tab)
			if !ok {
				return fmt.Errorf("aba desconhecida %q (use todas ou minhas)", tab)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Load())
			defer cancel()

			p := cartas.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			view := p.View(cartas.Filter{Tab: parsed, Q: q})
			if c.output != outputTable {
				return c.encode(view)
			}
			tbl := newTable("Cartas Abertas · "+view.Tab, "ID", "Título", "Autoria", "Status", "Apoios", "Apoiada")
			for _, card := range view.Cartas {
				tbl.AddRow(card.ID.String(), clip(card.Titulo, 40), card.AutorNome, string(card.Status),
					fmt.Sprint(card.Apoiadores), mark(card.Apoiada))
			}
			tbl.Footer = fmt.Sprintf("%d publicadas · %d apoios · %d minhas",
				view.Stats.Publicadas, view.Stats.Apoios, view.Stats.Minhas)
			return c.table(tbl)
		},
	}
	list.Flags().StringVar(&tab, "tab", cartas.TabTodas, "todas or minhas")
	list.Flags().StringVar(&q, "q", "", "search term")

	apoiar := &cobra.Command{
		Use:   "apoiar ID",
		Short: "Toggle your support for a published letter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Write())
			defer cancel()

			p := cartas.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			n, err := p.Apoiar(ctx, models.ID(args[0]))
			if err != nil {
				return c.fail(n, err)
			}
			return c.done(n, nil)
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of your letters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Write())
			defer cancel()

			p := cartas.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			n, err := p.Delete(ctx, models.ID(args[0]), yes)
			if err != nil {
				return c.fail(n, err)
			}
			return c.done(n, nil)
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	cmd.AddCommand(list, apoiar, del)
	return cmd
}
