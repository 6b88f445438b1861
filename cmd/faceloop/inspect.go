package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/phanxgames/faceloop"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	Options
	Load bool
}

var inspectOpts inspectOptions

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a dataset and summarise it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, &inspectOpts)
	},
}

func init() {
	inspectOpts.bindDataset(inspectCmd.Flags())
	inspectCmd.Flags().BoolVar(&inspectOpts.Load, "load", false, "Also load every image and report failures")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, o *inspectOptions) error {
	if err := o.resolvePaths(); err != nil {
		return err
	}
	mode, err := faceloop.ParseAnchorMode(o.Anchor)
	if err != nil {
		return err
	}
	ds, err := faceloop.LoadDataset(o.Dataset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	usable := ds.Usable(mode)
	printSummary(out, ds, mode, len(usable))

	if !o.Load || len(usable) == 0 {
		return nil
	}

	bar := newBar(len(usable), "Loading")
	items := preload(cmd.Context(), o.AssetRoot, usable, bar)
	if err := items.Wait(cmd.Context()); err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	st := items.Stats()
	fmt.Fprintf(out, "loaded: %d/%d failed: %d\n", st.Ready, st.Total, st.Failed)
	for _, it := range items.Items() {
		if !it.Ready() {
			fmt.Fprintf(out, "  not loaded: %s\n", it.Record.Src)
		}
	}
	return nil
}

func printSummary(w io.Writer, ds *faceloop.Dataset, mode faceloop.AnchorMode, usable int) {
	fmt.Fprintf(w, "records: %d valid, %d rejected\n", len(ds.Records), len(ds.Rejected))
	fmt.Fprintf(w, "anchor %s: %d usable\n", mode, usable)

	counts := map[faceloop.LandmarkGroup]int{}
	for _, r := range ds.Records {
		for _, g := range faceloop.LandmarkGroups {
			if r.Landmarks.Has(g) {
				counts[g]++
			}
		}
	}
	groups := make([]faceloop.LandmarkGroup, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	for _, g := range groups {
		fmt.Fprintf(w, "  %-14s %d\n", g, counts[g])
	}

	for _, rej := range ds.Rejected {
		fmt.Fprintf(w, "rejected #%d %s: %v\n", rej.Index, rej.Src, rej.Err)
	}
}
