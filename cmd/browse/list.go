package main

import (
	"fmt"
	"os"
	"time"

	"app/internal/browse"
	"app/internal/filter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products matching the given filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := patchFromFlags(cmd)

		// 一回きりの実行なのでデバウンスは0
		ctrl := browse.NewController(querier, patch, 0)
		defer ctrl.Close()

		snap, err := waitForSettle(ctrl, 15*time.Second)
		if err != nil {
			return err
		}

		if snap.Err != nil {
			// 0件とは別物。再試行を促す。
			fmt.Fprintf(os.Stderr, "Error: %v\nTry again later.\n", snap.Err)
			os.Exit(1)
		}

		if jsonOutput {
			printResultJSON(snap)
			return nil
		}
		printResultTable(snap)
		return nil
	},
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().Int("page", filter.DefaultPage, "page number (1-based)")
	listCmd.Flags().Int("limit", 0, "page size")
}

// addFilterFlags は絞り込み系のフラグを登録する（list / watch 共通）
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "filter by category")
	cmd.Flags().StringP("search", "q", "", "free-text search")
	cmd.Flags().Int64("min-price", 0, "minimum price (inclusive)")
	cmd.Flags().Int64("max-price", 0, "maximum price (inclusive)")
	cmd.Flags().StringSlice("colors", nil, "filter by colors (repeatable)")
	cmd.Flags().StringSlice("sizes", nil, "filter by sizes (repeatable)")
	cmd.Flags().StringSlice("tags", nil, "filter by tags (repeatable)")
	cmd.Flags().StringSlice("brand", nil, "filter by brands (repeatable)")
	cmd.Flags().String("sort", string(filter.SortPopular), "sort order: popular|price-asc|price-desc|newest")
}

// patchFromFlags は指定されたフラグだけを Patch に載せる
func patchFromFlags(cmd *cobra.Command) filter.Patch {
	var p filter.Patch

	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		p.Category = &v
	}
	if cmd.Flags().Changed("search") {
		v, _ := cmd.Flags().GetString("search")
		p.Search = &v
	}
	if cmd.Flags().Changed("min-price") {
		v, _ := cmd.Flags().GetInt64("min-price")
		p.MinPrice = &v
	}
	if cmd.Flags().Changed("max-price") {
		v, _ := cmd.Flags().GetInt64("max-price")
		p.MaxPrice = &v
	}
	if cmd.Flags().Changed("colors") {
		v, _ := cmd.Flags().GetStringSlice("colors")
		p.Colors = &v
	}
	if cmd.Flags().Changed("sizes") {
		v, _ := cmd.Flags().GetStringSlice("sizes")
		p.Sizes = &v
	}
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetStringSlice("tags")
		p.Tags = &v
	}
	if cmd.Flags().Changed("brand") {
		v, _ := cmd.Flags().GetStringSlice("brand")
		p.Brand = &v
	}
	if cmd.Flags().Changed("sort") {
		v, _ := cmd.Flags().GetString("sort")
		s := filter.Sort(v)
		p.Sort = &s
	}
	if cmd.Flags().Changed("page") {
		v, _ := cmd.Flags().GetInt("page")
		p.Page = &v
	}
	if cmd.Flags().Changed("limit") {
		v, _ := cmd.Flags().GetInt("limit")
		p.Limit = &v
	} else if cfg.PageSize > 0 && cfg.PageSize != filter.DefaultLimit {
		v := cfg.PageSize
		p.Limit = &v
	}

	return p
}

// waitForSettle は最初のクエリが確定するまで待つ
func waitForSettle(ctrl *browse.Controller, timeout time.Duration) (browse.Snapshot, error) {
	deadline := time.After(timeout)
	for {
		snap := ctrl.Snapshot()
		if !snap.Loading && (snap.Result != nil || snap.Err != nil) {
			return snap, nil
		}

		select {
		case <-ctrl.Updates():
		case <-deadline:
			return browse.Snapshot{}, fmt.Errorf("timed out waiting for results")
		}
	}
}
