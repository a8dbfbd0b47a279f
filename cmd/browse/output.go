package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"app/internal/browse"
	"app/internal/domain/model"
)

func printResultTable(snap browse.Snapshot) {
	res := snap.Result
	if res == nil {
		return
	}

	if len(res.Items) == 0 {
		// エラーではなく0件。絞り込みの解除を促す。
		fmt.Println("No products found for these filters. Try clearing filters.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tPRICE\tSTOCK")
	for _, p := range res.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
			p.ID, p.Name, p.Category, p.Brand, p.Price, p.Stock)
	}
	w.Flush()

	pg := res.Pagination
	fmt.Printf("page %d/%d (%d total)\n", pg.Page, pg.Pages, pg.Total)
	if snap.HasActiveFilters {
		fmt.Printf("active filters: %d\n", snap.ActiveFilterCount)
	}
}

func printResultJSON(snap browse.Snapshot) {
	b, err := json.MarshalIndent(snap.Result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(b))
}

func printProductDetail(p model.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", p.ID)
	fmt.Fprintf(w, "Name:\t%s\n", p.Name)
	fmt.Fprintf(w, "Category:\t%s\n", p.Category)
	fmt.Fprintf(w, "Brand:\t%s\n", p.Brand)
	fmt.Fprintf(w, "Color:\t%s\n", p.Color)
	fmt.Fprintf(w, "Size:\t%s\n", p.Size)
	fmt.Fprintf(w, "Tags:\t%s\n", p.Tags)
	fmt.Fprintf(w, "Price:\t%d\n", p.Price)
	fmt.Fprintf(w, "Stock:\t%d\n", p.Stock)
	if p.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", p.Description)
	}
	w.Flush()
}

func printProductJSON(p model.Product) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(b))
}
