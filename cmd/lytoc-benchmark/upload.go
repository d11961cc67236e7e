// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lytoc-benchmark/internal/hub"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <user/repo>",
	Short: "Publish the dataset to the Hugging Face Hub",
	Long: `Upload creates the dataset repository if it does not exist and commits
README.md (from HF_README.md, or a generated card), dataset.json,
dataset.jsonl and data/train.jsonl. The token is read from .secrets/hf-token
or HF_TOKEN.`,
	Example: "  lytoc-benchmark upload alice/lytoc-benchmark --private",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Hub.RepoID = args[0]
		return upload(cmd, cfg.Hub)
	},
}

func upload(cmd *cobra.Command, cfg types.HubConfig) error {
	if _, _, err := hub.SplitRepoID(cfg.RepoID); err != nil {
		return err
	}
	if cfg.Token == "" {
		return fmt.Errorf("%w: write it to %shf-token or set HF_TOKEN", hub.ErrMissingToken, secretsDir)
	}
	return hub.Upload(cmd.Context(), hub.NewClient(cfg, logger), cfg, cmd.OutOrStdout())
}

func init() {
	addUploadFlags(uploadCmd)
	rootCmd.AddCommand(uploadCmd)
}
