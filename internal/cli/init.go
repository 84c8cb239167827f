package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feat/internal/adapter/fs"
	"feat/internal/usecase"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .feat.toml",
	Long: `Write a .feat.toml configuration file at the repository root.

The primary language is guessed by counting .rs and .py files when a src
or lib directory exists.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	uc := usecase.NewInitUseCase(repoCtx, fs.NewWalker(), fs.NewWriter())

	result, err := uc.Init(initForce)
	if err != nil {
		if errors.Is(err, usecase.ErrConfigExists) {
			return fail(err)
		}
		return fail(fmt.Errorf("init failed: %w", err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s created %s\n", SuccessStyle.Render("✓"), result.Path)
	fmt.Fprintf(out, "detected primary language: %s\n", CmdStyle.Render(string(result.Language)))
	fmt.Fprintf(out, "run %s to see discovered features\n", CmdStyle.Render("feat list"))
	return nil
}
