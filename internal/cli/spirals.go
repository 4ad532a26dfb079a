package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// spiralsCommand lists the registered search spirals.
func (c *CLI) spiralsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spirals",
		Short: "List the available search spirals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range spiral.Names() {
				printName(name, name == pipeline.DefaultSpiral)
			}
			return nil
		},
	}
}

// fontsCommand lists the embedded font families and their aliases.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the embedded font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fonts.Families() {
				printName(name, name == pipeline.DefaultFont)
			}
			return nil
		},
	}
}

func printName(name string, isDefault bool) {
	if isDefault {
		fmt.Println(StyleHighlight.Render(name) + " " + StyleDim.Render("(default)"))
		return
	}
	fmt.Println(name)
}
