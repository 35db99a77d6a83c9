package main

import (
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Crear un snapshot JSON con todos los datos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := openToolbox()
			if err != nil {
				return err
			}

			snap, err := tb.backup.Create(cmd.Context())
			if err != nil {
				return err
			}

			data, err := snap.Encode()
			if err != nil {
				return err
			}

			path, err := tb.writer.Save(snap.Filename(), data)
			if err != nil {
				return err
			}

			cmd.Println("backup written to", path)
			return nil
		},
	}
}
