package cli

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader/local"

	"github.com/spf13/cobra"
)

var (
	flagOutput     string
	flagIngredient string
	flagCompound   string
	flagDescriptor string
	flagField      string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge an .xlsx or .csv file into the database",
	Long: `Merge a spreadsheet into the database. The first three columns are read
as ingredient, compound and descriptor whatever their headers say. Rows
without an ingredient are dropped and duplicates collapse.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		records, err := local.NewFileLoader().Load(ctx, args[0])
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		res, err := s.Import(ctx, records)
		if err != nil {
			return err
		}
		fprintf(cmd.OutOrStdout(), "accepted %d rows, added %d, total %d\n", res.Accepted, res.Added, res.Total)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the database as spreadsheet-compatible CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := s.Export(&buf, flavor.Header(flagLang)); err != nil {
			return err
		}
		if flagOutput == "" || flagOutput == "-" {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		return os.WriteFile(flagOutput, buf.Bytes(), 0o644)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record, or infer records from a descriptor",
	Long: `Add one record when ingredient, compound and descriptor are given.

With an ingredient and a descriptor but no compound, every compound recorded
against that descriptor is looked up and the ingredient inherits all of the
descriptors of each match.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		res, err := s.SmartAdd(ctx, flagIngredient, flagCompound, flagDescriptor)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.Inferred {
			fprintf(out, "inferred from compounds: %v\n", res.Compounds)
		}
		for _, r := range res.Records {
			fprintf(out, "%s\t%s\t%s\n", r.Ingredient, r.Compound, r.Descriptor)
		}
		fprintf(out, "added %d, total %d\n", res.Added, res.Total)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record and the database file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := s.Clear(cmd.Context()); err != nil {
			return err
		}
		fprintf(cmd.OutOrStdout(), "cleared %s\n", flagDB)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demonstration dataset into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		n, err := s.Seed(cmd.Context(), flavor.DemoRecords())
		if err != nil {
			return err
		}
		fprintf(cmd.OutOrStdout(), "seeded %d records\n", n)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the size of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		opts := flavor.PickerOptions(s.Snapshot())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fprintf(w, "records\t%d\n", s.Len())
		fprintf(w, "ingredients\t%d\n", len(opts.Ingredients))
		fprintf(w, "compounds\t%d\n", len(opts.Compounds))
		fprintf(w, "descriptors\t%d\n", len(opts.Descriptors))
		return w.Flush()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search records by ingredient, compound, descriptor or any field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		table := s.Snapshot()
		q := args[0]
		var hits any
		switch flagField {
		case "ingredient":
			hits = flavor.SearchIngredients(table, q)
		case "compound":
			hits = flavor.SearchCompounds(table, q)
		case "descriptor":
			hits = flavor.SearchDescriptors(table, q)
		case "any", "":
			hits = flavor.SearchAny(table, q)
		default:
			return fmt.Errorf("unknown field %q", flagField)
		}
		return printJSON(cmd.OutOrStdout(), hits)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file path (use '-' for stdout)")

	addCmd.Flags().StringVarP(&flagIngredient, "ingredient", "i", "", "Ingredient name")
	addCmd.Flags().StringVarP(&flagCompound, "compound", "c", "", "Compound name, empty to infer from the descriptor")
	addCmd.Flags().StringVarP(&flagDescriptor, "descriptor", "d", "", "Flavor descriptor")

	searchCmd.Flags().StringVarP(&flagField, "field", "f", "any", "Field to search: ingredient, compound, descriptor or any")

	rootCmd.AddCommand(importCmd, exportCmd, addCmd, clearCmd, seedCmd, statsCmd, searchCmd)
}
