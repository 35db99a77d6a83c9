package main

import (
	"github.com/spf13/cobra"

	"pocket-squeak/internal/domain/export"
)

func newExportCmd() *cobra.Command {
	var (
		petIDs []int64
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar registros a CSV (default: últimos 30 días)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := openToolbox()
			if err != nil {
				return err
			}

			res, err := tb.export.Export(cmd.Context(), export.Options{
				PetIDs:    petIDs,
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				return err
			}

			path, err := tb.writer.Save(res.Filename, []byte(res.CSV))
			if err != nil {
				return err
			}

			cmd.Println("export written to", path)
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&petIDs, "pets", nil, "ids de mascotas a incluir (default: todas)")
	cmd.Flags().StringVar(&start, "start", "", "fecha inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "fecha final YYYY-MM-DD")

	return cmd
}
