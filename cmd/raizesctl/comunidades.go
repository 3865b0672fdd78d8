package main

import (
	"context"
	"fmt"

	"github.com/dalemusser/raizes/internal/app/features/comunidades"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/spf13/cobra"
)

func (c *cli) comunidadesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comunidades",
		Short: "Territorial and virtual communities",
	}

	var q string
	list := &cobra.Command{
		Use:   "list",
		Short: "List territorial and virtual communities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Load())
			defer cancel()

			p := comunidades.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			view := p.View(q)
			if c.output != outputTable {
				return c.encode(view)
			}

			terr := newTable("Comunidades territoriais", "ID", "Nome", "Território", "Localização", "Regiões")
			for _, t := range view.Territoriais {
				terr.AddRow(t.ID.String(), clip(t.Nome, 40), t.Style.Label, t.Localizacao, fmt.Sprint(len(t.Regioes)))
				terr.ColorLast(t.Style.Color)
			}
			terr.Footer = fmt.Sprintf("%d de %d", len(view.Territoriais), view.TotalTerritorios)
			if err := c.table(terr); err != nil {
				return err
			}
			fmt.Fprintln(c.out)

			virt := newTable("Comunidades virtuais", "ID", "Nome", "Tipo", "Membros", "Participa")
			for _, v := range view.Virtuais {
				virt.AddRow(v.ID.String(), clip(v.Nome, 40), v.Tipo, fmt.Sprint(v.TotalMembros), mark(v.Participa))
			}
			virt.Footer = fmt.Sprintf("%d de %d", len(view.Virtuais), view.TotalVirtuais)
			return c.table(virt)
		},
	}
	list.Flags().StringVar(&q, "q", "", "search term")

	participar := &cobra.Command{
		Use:   "participar ID",
		Short: "Join or leave a virtual community",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Write())
			defer cancel()

			p := comunidades.NewPage(c.client, c.policy(), c.log)
			c.open(ctx, p)
			defer p.Unmount()

			n, err := p.Participar(ctx, models.ID(args[0]))
			if err != nil {
				return c.fail(n, err)
			}
			return c.done(n, nil)
		},
	}

	cmd.AddCommand(list, participar)
	return cmd
}
