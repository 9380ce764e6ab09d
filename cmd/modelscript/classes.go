package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
)

// ClassInfo is one row of the class catalogue
type ClassInfo struct {
	Class    string `json:"class"`
	Kebab    string `json:"kebab"`
	Category string `json:"category"`
	ui.ClassCapabilities
}

func newClassesCmd() *cobra.Command {
	var (
		human    bool
		capsPath string
		category string
	)
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the creatable classes and their rendering capabilities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := ui.DefaultTable()
			if capsPath != "" {
				f, err := os.Open(capsPath)
				if err != nil {
					return fmt.Errorf("failed to open capabilities file: %w", err)
				}
				defer f.Close()
				if table, err = ui.LoadTable(f); err != nil {
					return err
				}
			}

			rows, err := catalogue(table, category)
			if err != nil {
				return err
			}
			if human {
				return writeTable(cmd.OutOrStdout(), rows)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
	cmd.Flags().BoolVar(&human, "human", false, "print an aligned table instead of JSON")
	cmd.Flags().StringVar(&capsPath, "capabilities", "", "YAML capability table replacing the built-in one")
	cmd.Flags().StringVar(&category, "category", "", "only list one category: element, relationship or diagram")
	return cmd
}

func catalogue(table *ui.Table, category string) ([]ClassInfo, error) {
	groups := []struct {
		name    string
		classes []string
	}{
		{"element", entities.ElementClasses()},
		{"relationship", entities.RelationshipClasses()},
		{"diagram", entities.DiagramObjectClasses()},
	}

	var rows []ClassInfo
	matched := category == ""
	for _, g := range groups {
		if category != "" && g.name != category {
			continue
		}
		matched = true
		for _, class := range g.classes {
			caps, _ := table.Lookup(class)
			rows = append(rows, ClassInfo{
				Class:             class,
				Kebab:             entities.KebabCase(class),
				Category:          g.name,
				ClassCapabilities: caps,
			})
		}
	}
	if !matched {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return rows, nil
}

func writeTable(w io.Writer, rows []ClassInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tKEBAB\tCATEGORY\tICON\tALT FIGURE\tHIDDEN")
	for _, r := range rows {
		hidden := make([]string, len(r.Hidden))
		for i, f := range r.Hidden {
			hidden[i] = string(f)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%s\n",
			r.Class, r.Kebab, r.Category, r.Icon, r.AlternateFigure, strings.Join(hidden, ","))
	}
	return tw.Flush()
}
