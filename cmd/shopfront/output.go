package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"shopfront/internal/api"
	"shopfront/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(s string) {
	fmt.Println(s)
}

func writeProductTable(products []api.ProductResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPICTURE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, truncate(p.Picture, 48))
	}
	w.Flush()
}

func writeProductDetail(p api.ProductResponse) {
	writePlain("id:          " + p.ID)
	writePlain("name:        " + p.Name)
	writePlain("category:    " + p.Category)
	if p.Description != "" {
		writePlain("description: " + p.Description)
	}
	if p.Picture != "" {
		writePlain("picture:     " + p.Picture)
	}
	writePlain("created:     " + p.CreatedAt)
	writePlain("updated:     " + p.UpdatedAt)
}

func writeBlogTable(posts []api.BlogResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tSTATUS\tDATE")
	for _, b := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, truncate(b.Title, 40), b.Author, b.Status, b.DisplayDate)
	}
	w.Flush()
}

func writeBlogDetail(b api.BlogResponse) {
	writePlain("id:      " + b.ID)
	writePlain("title:   " + b.Title)
	writePlain("author:  " + b.Author)
	writePlain("status:  " + b.Status)
	writePlain("date:    " + b.DisplayDate)
	if b.Excerpt != "" {
		writePlain("excerpt: " + b.Excerpt)
	}
	if b.Content != "" {
		writePlain("")
		writePlain(b.Content)
	}
}

func writeCategories(categories []string, revision int64) {
	writePlain(fmt.Sprintf("revision %d", revision))
	for _, c := range categories {
		writePlain("  " + c)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
