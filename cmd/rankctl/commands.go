package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
	"github.com/reborn-osrs/reborn-ranks/internal/reconcile"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rankctl",
		Short:         "Evaluate clan ranks and reconcile item names offline",
		SilenceUsage: true,
	}
	root.AddCommand(newEvaluateCmd(), newReconcileCmd(), newSkillingCmd(), newCatalogCmd())
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type evaluateOutput struct {
	Evaluation          ranks.Evaluation `json:"evaluation"`
	NextThreshold       *int             `json:"nextThreshold"`
	Progress            float64          `json:"progress"`
	BlockedByCapability bool             `json:"blockedByCapability"`
	UnknownItemIDs      []string         `json:"unknownItemIds,omitempty"`
}

func newEvaluateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the PvM rank of a checklist JSON file ({\"item_id\": true})",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var checked catalog.Checklist
			if err := json.Unmarshal(raw, &checked); err != nil {
				return fmt.Errorf("parse checklist %s: %w", path, err)
			}

			cat := catalog.MustDefault()
			ev, err := ranks.NewDefaultEvaluator(cat)
			if err != nil {
				return err
			}

			out := evaluateOutput{Evaluation: ev.Evaluate(checked)}
			if n, ok := out.Evaluation.NextThreshold(); ok {
				out.NextThreshold = &n
			}
			out.Progress = out.Evaluation.Progress()
			out.BlockedByCapability = out.Evaluation.BlockedByCapability()
			for id := range checked {
				if !cat.Has(id) {
					out.UnknownItemIDs = append(out.UnknownItemIDs, id)
				}
			}
			sort.Strings(out.UnknownItemIDs)
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&path, "checklist", "", "path to the checklist JSON file")
	cmd.MarkFlagRequired("checklist")
	return cmd
}

type reconcileOutput struct {
	reconcile.Result
	Suggestions map[string][]reconcile.Suggestion `json:"suggestions,omitempty"`
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}

func newReconcileCmd() *cobra.Command {
	var (
		path    string
		suggest int
	)
	cmd := &cobra.Command{
		Use:   "reconcile [names...]",
		Short: "Map tracker item names to catalog ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if path != "" {
				fromFile, err := readNames(path)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return fmt.Errorf("no item names given")
			}

			engine := reconcile.NewDefaultEngine(catalog.MustDefault())
			out := reconcileOutput{Result: engine.Reconcile(names)}
			if suggest > 0 && len(out.Unmatched) > 0 {
				out.Suggestions = map[string][]reconcile.Suggestion{}
				for _, name := range out.Unmatched {
					out.Suggestions[name] = engine.Index().Suggest(name, suggest)
				}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "file with one item name per line")
	cmd.Flags().IntVar(&suggest, "suggest", 3, "fuzzy suggestions per unmatched name, 0 to disable")
	return cmd
}

func newSkillingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skilling TOTAL",
		Short: "Evaluate the skilling rank for a total level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("total level %q is not a number", args[0])
			}
			return printJSON(cmd.OutOrStdout(), ranks.DefaultSkillingRanks().Evaluate(total))
		},
	}
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the item catalog grouped by source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.MustDefault()
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"groups":       cat.Groups(),
				"requirements": cat.Requirements(),
				"pointsMax":    cat.PointsMax(),
			})
		},
	}
}
