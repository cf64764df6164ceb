package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linnemanlabs/voxa/internal/symptom"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the selectable RED and YELLOW symptoms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCatalog(cmd.OutOrStdout(), symptom.DefaultCatalog())
		},
	}
}

func printCatalog(w io.Writer, c *symptom.Catalog) error {
	sections := []struct {
		title string
		set   symptom.Set
	}{
		{"RED", c.Red()},
		{"YELLOW", c.Yellow()},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n", s.title); err != nil {
			return err
		}
		for _, f := range s.set.Sorted() {
			if _, err := fmt.Fprintf(w, "  %s\n", f); err != nil {
				return err
			}
		}
	}
	return nil
}
