package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/version"
	"github.com/spf13/cobra"
)

var versionBanner bool

func init() {
	versionCmd.Flags().BoolVar(&versionBanner, "banner", false, "print the ASCII banner")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the oidcrypt version",
	Long: `Prints the version stamped into new envelopes and the oldest version
whose envelopes use the current (base64) format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionBanner {
			fmt.Println()
			figure.NewColorFigure(version.Producer, "alligator2", "green", true).Print()
			fmt.Println()
		}
		fmt.Println(version.Producer + " " + version.Current)
		fmt.Println(ui.Muted.Sprint("envelopes written before " + version.MinBase64 + " use the legacy hex format"))
		return nil
	},
}
