// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lytoc-benchmark/internal/doctor"
	"github.com/pdiddy/lytoc-benchmark/internal/raster"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment is ready for the pipeline",
	Long: `Doctor checks for the raw/ PDF directory, the OCR and Hub tokens
(placeholder values count as unset), and a way to render PDF pages
(pdftoppm on the host, or docker/podman with the poppler image).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		env := doctor.Env{
			ConfigFile: viper.ConfigFileUsed(),
			Secrets:    loadedSecrets,
			Renderer: func() (string, error) {
				r, err := raster.Detect(cfg.Extraction.Raster)
				if err != nil {
					return "", err
				}
				return r.Name(), nil
			},
		}
		if r := doctor.Run(cfg, env, cmd.OutOrStdout()); !r.Passed() {
			return fmt.Errorf("%d check(s) failed", len(r.Failed()))
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().String("raw-dir", "raw", "directory containing homework PDFs")
	doctorCmd.Flags().String("image", "minidocks/poppler:latest", "container image providing pdftoppm")
	rootCmd.AddCommand(doctorCmd)
}
