package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <pet-id>",
		Short: "Sembrar una semana de registros de ejemplo para una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			petID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || petID <= 0 {
				return fmt.Errorf("invalid pet id %q", args[0])
			}

			tb, err := openToolbox()
			if err != nil {
				return err
			}

			if err := tb.records.SeedHistory(cmd.Context(), petID); err != nil {
				return err
			}

			cmd.Println("seeded sample history for pet", petID)
			return nil
		},
	}
}
