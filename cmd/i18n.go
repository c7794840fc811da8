package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/llm"
	"github.com/ranilearn/rani/internal/translate"
)

var errMissingKeys = errors.New("translation keys are missing")

var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Check and fill translation tables",
}

var i18nCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List keys each language is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := i18n.Default()
		missing := false
		for _, lang := range i18n.All() {
			keys := tables.MissingKeys(lang)
			if len(keys) == 0 {
				fmt.Printf("%s  complete\n", lang)
				continue
			}
			missing = true
			fmt.Printf("%s  %d missing: %s\n", lang, len(keys), strings.Join(keys, ", "))
		}
		if missing {
			return errMissingKeys
		}
		return nil
	},
}

var i18nFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Translate missing keys with the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		langFlag, _ := cmd.Flags().GetString("lang")
		outDir, _ := cmd.Flags().GetString("out")

		lang, err := i18n.ParseLanguage(langFlag)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
		if err != nil {
			return fmt.Errorf("llm provider: %w", err)
		}

		res, err := translate.NewFiller(provider, i18n.Default(), e.logger).Fill(ctx, lang)
		if err != nil {
			return fmt.Errorf("fill %s: %w", lang, err)
		}
		if len(res.Added) == 0 {
			fmt.Fprintf(os.Stderr, "%s has no missing keys.\n", lang)
			return nil
		}

		var w io.Writer = os.Stdout
		if outDir != "" {
			path := filepath.Join(outDir, string(lang)+".yaml")
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			w = f
			defer fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
		if err := translate.WriteYAML(w, res.Table); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Added %d keys: %s\n", len(res.Added), strings.Join(res.Added, ", "))
		return nil
	},
}

func init() {
	i18nFillCmd.Flags().String("lang", "", "Language to fill (hi or bn)")
	_ = i18nFillCmd.MarkFlagRequired("lang")
	i18nFillCmd.Flags().String("out", "", "Directory to write <lang>.yaml into (default stdout)")

	i18nCmd.AddCommand(i18nCheckCmd)
	i18nCmd.AddCommand(i18nFillCmd)
}
