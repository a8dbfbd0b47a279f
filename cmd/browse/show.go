package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"app/internal/catalog"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id: %q", args[0])
		}

		p, err := querier.FindByID(context.Background(), id)
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Product not found.")
			os.Exit(1)
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			printProductJSON(p)
			return nil
		}
		printProductDetail(p)
		return nil
	},
}
