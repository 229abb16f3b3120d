// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/l3montree-dev/reviewboard/services"
	"github.com/spf13/cobra"
)

func NewExportCommand() *cobra.Command {
	export := &cobra.Command{
		Use:   "export",
		Short: "Writes all applications, users and statistics as json",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.Close()

			document, err := services.NewExportService(e.applications, e.users).Export(cmd.Context())
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = services.ExportFileName(document.ExportDate)
			}

			raw, err := json.MarshalIndent(document, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return err
			}
			slog.Info("export written", "file", output, "applications", len(document.Applications))
			return nil
		},
	}

	export.Flags().StringP("output", "o", "", "file to write, defaults to application-data-<date>.json")
	return export
}
