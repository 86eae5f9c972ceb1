package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/llm"
	"github.com/abhisek/grandmaster/internal/store"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded coach requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent coach requests with the suggested move",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and answer of one coach request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), ev)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coach usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		byPurpose, err := e.store.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := e.store.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func printEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "The coach has not been asked anything yet.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-16s  %-24s  %6s  %s\n", "ID", "When", "Model", "Ms", "Answer")
	for _, ev := range events {
		fmt.Fprintf(w, "%-5d  %-16s  %-24s  %6d  %s\n",
			ev.ID, ev.Timestamp.Local().Format(timeLayout), truncate(ev.Model, 24), ev.LatencyMs, answerOf(ev))
	}
}

// answerOf summarizes the outcome of one request for a table cell.
func answerOf(ev store.LLMEvent) string {
	if !ev.Success {
		return "failed: " + truncate(ev.ErrorMessage, 40)
	}
	var h hint.Hint
	if err := json.Unmarshal([]byte(ev.ResponseBody), &h); err != nil || h.SuggestedMove == "" {
		return "(no move)"
	}
	if h.Evaluation != "" {
		return h.SuggestedMove + " (" + h.Evaluation + ")"
	}
	return h.SuggestedMove
}

func printEvent(w io.Writer, ev *store.LLMEvent) {
	fmt.Fprintf(w, "Request %d at %s\n", ev.ID, ev.Timestamp.Local().Format(timeLayout))
	fmt.Fprintf(w, "  %s/%s, %s, %d in / %d out tokens, %dms\n",
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens, ev.LatencyMs)
	if ev.ErrorMessage != "" {
		fmt.Fprintf(w, "  error: %s\n", ev.ErrorMessage)
	}

	fmt.Fprintln(w, "\nPrompt:")
	fmt.Fprintln(w, orNone(strings.TrimSpace(ev.RequestBody)))

	fmt.Fprintln(w, "\nAnswer:")
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(ev.ResponseBody), "", "  "); err == nil {
		fmt.Fprintln(w, pretty.String())
	} else {
		fmt.Fprintln(w, orNone(ev.ResponseBody))
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func printUsage(w io.Writer, byPurpose, byModel []store.LLMUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No coach usage recorded yet.")
		return
	}
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%s: %d calls, %d tokens, %dms average\n",
			u.Purpose, u.Calls, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
	}

	fmt.Fprintf(w, "\n%-32s  %6s  %10s\n", "Model", "Calls", "Cost")
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := llm.LookupCost(u.Model)
		if cost == nil {
			unpriced = append(unpriced, u.Model)
			fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		total += c
		fmt.Fprintf(w, "%-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, formatCost(c))
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s\n", "Total", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. hint)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
