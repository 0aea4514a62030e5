package cli

import (
	"encoding/json"
	"io"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/view"

	"github.com/spf13/cobra"
)

var (
	flagPrimaries []string
	flagCompounds []string
	flagFeatures  []string
	flagCombine   string
	flagPolicy    string
	flagView      string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Classify a selection and print a view as JSON",
	Long: `Relate the chosen ingredients to the rest of the database and print the
requested view. Without --compound the compounds are derived with --combine:
the shared tiers of the policy (default), their union or their intersection.

Examples:
  flavorctl graph -i 豌豆 -i 辣椒 --view sankey
  flavorctl graph -i 豌豆 --combine union --view heatmap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := view.ByName(flagView)
		if err != nil {
			return err
		}
		policy, err := graph.PolicyByName(flagPolicy)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		records := s.Records()
		compounds, err := graph.ChooseCompounds(records, flagPrimaries, flagCompounds, flagFeatures, flagCombine, policy)
		if err != nil {
			return err
		}
		g := graph.Build(graph.Classify(records, flagPrimaries, compounds), nil)
		return printJSON(cmd.OutOrStdout(), adapter(g))
	},
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	graphCmd.Flags().StringArrayVarP(&flagPrimaries, "ingredient", "i", nil, "Primary ingredient (repeatable)")
	graphCmd.Flags().StringArrayVarP(&flagCompounds, "compound", "c", nil, "Chosen compound (repeatable)")
	graphCmd.Flags().StringArrayVar(&flagFeatures, "feature", nil, "Only keep compounds with this descriptor (repeatable)")
	graphCmd.Flags().StringVar(&flagCombine, "combine", graph.CombineDefault, "default, union or intersection")
	graphCmd.Flags().StringVar(&flagPolicy, "policy", "", "Tier policy: tiered or intersection (default $FLAVOR_TIER_POLICY or tiered)")
	graphCmd.Flags().StringVar(&flagView, "view", view.ViewNetwork, "network, sankey, heatmap or circle")
	_ = graphCmd.MarkFlagRequired("ingredient")

	rootCmd.AddCommand(graphCmd)
}
