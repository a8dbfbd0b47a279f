package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"app/internal/browse"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-query at an interval and print when results change",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		patch := patchFromFlags(cmd)

		ctrl := browse.NewController(querier, patch, 0)
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var lastTotal int64 = -1
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				ctrl.Refresh()
			case <-ctrl.Updates():
				snap := ctrl.Snapshot()
				if snap.Loading || (snap.Result == nil && snap.Err == nil) {
					continue
				}
				if snap.Err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", snap.Err)
					continue
				}
				// 件数が変わったときだけ出し直す
				if snap.Result.Pagination.Total == lastTotal {
					continue
				}
				lastTotal = snap.Result.Pagination.Total
				fmt.Printf("--- %s ---\n", time.Now().Format(time.TimeOnly))
				printResultTable(snap)
			}
		}
	},
}

func init() {
	addFilterFlags(watchCmd)
	watchCmd.Flags().Duration("interval", 10*time.Second, "polling interval")
}
