package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/prompt"
)

func RoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms <description>",
		Short: "List the rooms offered for a home description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, room := range catalog.RoomsFor(strings.Join(args, " ")) {
				fmt.Fprintln(cmd.OutOrStdout(), room)
			}
			return nil
		},
	}
}

func PromptCmd() *cobra.Command {
	var (
		description string
		reference   bool
	)

	cmd := &cobra.Command{
		Use:   "prompt <subcategory> [attribute=value...]",
		Short: "Print the generation prompt for a view or room",
		Long: "Print the prompt that would be sent for a view or room.\n" +
			"Attributes are given as name=value pairs, e.g.\n" +
			"  manage prompt Kitchen \"Cabinets=White Shaker\" Countertops=Quartz",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subcategory := args[0]
			if !catalog.Has(subcategory) {
				return fmt.Errorf("unknown subcategory %q (known: %s)", subcategory, strings.Join(catalog.Subcategories(), ", "))
			}

			values, err := parseSelections(subcategory, args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), prompt.Build(subcategory, catalog.Ordered(subcategory, values), description, reference))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "home description to include")
	cmd.Flags().BoolVar(&reference, "reference", false, "build the prompt as if a reference image were attached")
	return cmd
}

// parseSelections reads attribute=value pairs and checks them against the
// catalog.
func parseSelections(subcategory string, pairs []string) (map[string]string, error) {
	values := map[string]string{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected attribute=value, got %q", pair)
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)

		allowed := catalog.Values(subcategory, name)
		if allowed == nil {
			return nil, fmt.Errorf("%s has no attribute %q (known: %s)", subcategory, name, strings.Join(catalog.AttributeNames(subcategory), ", "))
		}
		if !slices.Contains(allowed, value) {
			return nil, fmt.Errorf("%s %s has no value %q (known: %s)", subcategory, name, value, strings.Join(allowed, ", "))
		}
		values[name] = value
	}
	return values, nil
}
