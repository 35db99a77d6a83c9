package main

import (
	"os"

	"github.com/spf13/cobra"

	"pocket-squeak/internal/domain/backup"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot.json>",
		Short: "Restaurar un snapshot (reemplaza TODOS los datos)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			snap, err := backup.ParseSnapshot(data)
			if err != nil {
				return err
			}

			tb, err := openToolbox()
			if err != nil {
				return err
			}

			if err := tb.backup.Restore(cmd.Context(), snap); err != nil {
				return err
			}

			cmd.Printf("restored %d pets, %d records\n", len(snap.Pets), len(snap.DailyRecords))
			return nil
		},
	}
}
