package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli carries the global flags and what PersistentPreRunE builds from them.
type cli struct {
	api     string
	user    string
	output  string
	verbose bool

	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
	client *apiclient.Client
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "raizesctl",
		Short: "Raízes from the terminal",
		Long: `raizesctl reads and acts on the Raízes network through its REST backend.

Every listing shows the same view the web pages build: the Círculo de
Saberes, communities, territories and open letters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validOutput(c.output) {
				return fmt.Errorf("unknown output %q (want table, json or yaml)", c.output)
			}
			c.log = newLogger(c.errOut, c.verbose)
			c.client = apiclient.New(c.api,
				apiclient.WithCurrentUser(c.user),
				apiclient.WithLogger(c.log.Named("apiclient")),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.api, "api", envOr("RAIZES_API_BASE_URL", apiclient.DefaultBaseURL), "backend base URL")
	pf.StringVar(&c.user, "user", envOr("RAIZES_CURRENT_USER_ID", apiclient.DefaultCurrentUser), "id of the current user record")
	pf.StringVarP(&c.output, "output", "o", outputTable, "output format: table, json or yaml")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log backend calls to stderr")

	root.AddCommand(
		c.statusCmd(),
		c.meCmd(),
		c.saberesCmd(),
		c.comunidadesCmd(),
		c.territoriosCmd(),
		c.cartasCmd(),
	)
	return root
}

// newLogger writes development-style logs to w. Only warnings and errors
// are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// page is the part of every view-model the commands drive.
type page interface {
	Mount()
	Unmount()
	Load(ctx context.Context) error
}

// open mounts and loads p. A partial load is reported on stderr and the
// command goes on with whatever arrived.
func (c *cli) open(ctx context.Context, p page) {
	p.Mount()
	if err := p.Load(ctx); err != nil {
		c.log.Warn("page loaded with errors", zap.Error(err))
		fmt.Fprintln(c.errOut, "aviso: alguns dados não puderam ser carregados")
	}
}

func (c *cli) policy() viewstate.Policy { return viewstate.Refetch }

// done reports a mutation result.
func (c *cli) done(n *notice.Notice, extra map[string]any) error {
	if c.output == outputTable {
		if n != nil {
			fmt.Fprintln(c.out, n.Message)
		}
		for k, v := range extra {
			fmt.Fprintf(c.out, "%s: %v\n", k, v)
		}
		return nil
	}
	body := map[string]any{"notice": n}
	for k, v := range extra {
		body[k] = v
	}
	return c.encode(body)
}

// fail turns a rejected mutation into the command error, led by the
// message the page would have shown.
func (c *cli) fail(n *notice.Notice, err error) error {
	if n == nil || n.Message == "" {
		return err
	}
	return fmt.Errorf("%s (%w)", n.Message, err)
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := c.client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend %s: %w", c.client.BaseURL(), err)
			}
			if c.output != outputTable {
				return c.encode(map[string]any{"api": c.client.BaseURL(), "message": msg.Message})
			}
			fmt.Fprintf(c.out, "%s\n%s\n", c.client.BaseURL(), msg.Message)
			return nil
		},
	}
}

func (c *cli) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := c.client.Auth.Me(cmd.Context())
			if c.output != outputTable {
				return c.encode(u)
			}
			t := newTable("Participante", "Campo", "Valor")
			t.AddRow("id", u.ID.String())
			t.AddRow("nome", u.FullName)
			t.AddRow("email", u.Email)
			t.AddRow("participação", string(u.TipoParticipante))
			t.AddRow("onboarding", yesNo(u.OnboardingCompleto))
			if u.PovoOrigem != "" {
				t.AddRow("povo", u.PovoOrigem)
			}
			if u.TerritorioOrigem != "" {
				t.AddRow("território", u.TerritorioOrigem)
			}
			t.AddRow("comunidades", fmt.Sprint(len(u.ComunidadesParticipantes)))
			return c.table(t)
		},
	}
}
