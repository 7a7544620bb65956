package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/migrations"
)

func newMigrateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel, e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer e.pool.Close()

			applied, err := postgres.Migrate(ctx, e.pool, migrations.FS, e.log.Component("migrate"))
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "esquema al día")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "aplicada %s\n", v)
			}
			return nil
		},
	}
}
