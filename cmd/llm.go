package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/llm"
	"github.com/ranilearn/rani/internal/store"
	"github.com/ranilearn/rani/internal/translate"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model calls made by `rani i18n fill`",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent translation calls grouped by target language",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		langFlag, _ := cmd.Flags().GetString("lang")

		var only i18n.Language
		if langFlag != "" {
			lang, err := i18n.ParseLanguage(langFlag)
			if err != nil {
				return err
			}
			only = lang
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		groups := groupByLanguage(events)
		if only != "" {
			groups = lo.Filter(groups, func(g languageGroup, _ int) bool { return g.Lang == only })
		}
		if len(groups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No translation calls recorded.")
			return nil
		}
		printGroups(cmd.OutOrStdout(), groups)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the strings one translation call produced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ev, err := env.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		w := cmd.OutOrStdout()
		lang, isFill := translate.PurposeLanguage(ev.Purpose)
		target := ev.Purpose
		if isFill {
			target = fmt.Sprintf("%s (%s)", lang.NativeName(), lang)
		}
		fmt.Fprintf(w, "Call %d  %s\n", ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  target  %s\n", target)
		fmt.Fprintf(w, "  model   %s/%s\n", ev.Provider, ev.Model)
		fmt.Fprintf(w, "  tokens  %d in, %d out, %dms\n", ev.InputTokens, ev.OutputTokens, ev.LatencyMs)
		if !ev.Success {
			fmt.Fprintf(w, "  failed  %s\n", ev.ErrorMessage)
		}
		fmt.Fprintln(w)

		if !raw && isFill && ev.ResponseBody != "" {
			entries, err := translate.DecodeReply([]byte(ev.ResponseBody))
			if err == nil {
				printEntries(w, i18n.Default(), entries)
				return nil
			}
			fmt.Fprintf(w, "Reply could not be decoded (%v); showing raw bodies.\n\n", err)
		}
		printBody(w, "Request", ev.RequestBody)
		printBody(w, "Response", ev.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show translation usage per language and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		byPurpose, err := e.store.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		tables := i18n.Default()

		fmt.Fprintf(w, "%-12s  %6s  %10s  %10s  %8s  %s\n", "Language", "Calls", "Input", "Output", "Avg Ms", "Missing")
		for _, u := range usageByLanguage(byPurpose) {
			fmt.Fprintf(w, "%-12s  %6d  %10d  %10d  %8d  %d\n",
				u.Lang.NativeName(), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs,
				len(tables.MissingKeys(u.Lang)))
		}

		byModel, err := e.store.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-32s  %6s  %10s\n", "Model", "Calls", "Cost (USD)")
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			cost, ok := llm.LookupCost(mu.Key)
			if !ok {
				unpriced = append(unpriced, mu.Key)
				fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(mu.Key, 32), mu.Calls, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(mu.Key, 32), mu.Calls, formatCost(c))
		}
		fmt.Fprintf(w, "%-32s  %6s  %10s\n", "total", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(w, "\nNo pricing for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// languageGroup is the calls made while filling one language.
type languageGroup struct {
	Lang   i18n.Language
	Events []store.LLMRequestEventRecord
}

// groupByLanguage buckets translation calls by target language in display
// order, newest call first within a language. Calls made for anything
// other than filling a language are left out.
func groupByLanguage(events []store.LLMRequestEventRecord) []languageGroup {
	byLang := lo.GroupBy(
		lo.Filter(events, func(ev store.LLMRequestEventRecord, _ int) bool {
			_, ok := translate.PurposeLanguage(ev.Purpose)
			return ok
		}),
		func(ev store.LLMRequestEventRecord) i18n.Language {
			lang, _ := translate.PurposeLanguage(ev.Purpose)
			return lang
		})

	var groups []languageGroup
	for _, lang := range i18n.All() {
		evs, ok := byLang[lang]
		if !ok {
			continue
		}
		slices.SortFunc(evs, func(a, b store.LLMRequestEventRecord) int { return int(b.Sequence - a.Sequence) })
		groups = append(groups, languageGroup{Lang: lang, Events: evs})
	}
	return groups
}

func printGroups(w io.Writer, groups []languageGroup) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		failed := lo.CountBy(g.Events, func(ev store.LLMRequestEventRecord) bool { return !ev.Success })
		fmt.Fprintf(w, "%s (%s): %d calls, %d failed\n", g.Lang.NativeName(), g.Lang, len(g.Events), failed)
		for _, ev := range g.Events {
			mark := "✓"
			if !ev.Success {
				mark = "✗"
			}
			fmt.Fprintf(w, "  %s %-5d %s  %-28s %6d→%-6d %6dms\n",
				mark, ev.ID, ev.Timestamp.Local().Format("01-02 15:04"),
				truncate(ev.Model, 28), ev.InputTokens, ev.OutputTokens, ev.LatencyMs)
		}
	}
}

// languageUsage is LLMUsage for the calls that filled one language.
type languageUsage struct {
	store.LLMUsage
	Lang i18n.Language
}

// usageByLanguage keeps one row per fillable language, in display order,
// including languages with no calls yet.
func usageByLanguage(byPurpose []store.LLMUsage) []languageUsage {
	rows := lo.FilterMap(i18n.All(), func(lang i18n.Language, _ int) (languageUsage, bool) {
		return languageUsage{Lang: lang}, lang != i18n.EN
	})
	for _, u := range byPurpose {
		lang, ok := translate.PurposeLanguage(u.Key)
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i].Lang == lang {
				rows[i].LLMUsage = u
			}
		}
	}
	return rows
}

// printEntries lists translated strings beside their English source.
func printEntries(w io.Writer, tables i18n.Tables, entries []translate.Entry) {
	fmt.Fprintf(w, "%d strings\n", len(entries))
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %-*s  %s\n", width, e.Key, e.Text)
		if en, ok := tables[i18n.EN][e.Key]; ok {
			fmt.Fprintf(w, "  %-*s  (%s)\n", width, "", en)
		}
	}
}

func printBody(w io.Writer, label, body string) {
	fmt.Fprintf(w, "%s:\n", label)
	if body == "" {
		fmt.Fprintln(w, "  (not captured)")
		return
	}
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 50, "Number of recent calls to read")
	llmListCmd.Flags().StringP("lang", "l", "", "Only show calls for this language (hi, bn)")
	llmViewCmd.Flags().Bool("raw", false, "Print the raw request and response bodies")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
