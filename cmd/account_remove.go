package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/utils"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var removeYes bool

func init() {
	accountRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a stored account and its backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account remove command")
		name := args[0]

		if !removeYes && utils.IsTerminal() {
			fmt.Printf("Remove account %s? [y/N]: ", ui.Highlight.Sprint(name))
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println(ui.WarnMark() + " Aborted")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Removing account...")
		defer cleanup()

		result, err := workflows.RemoveAccount(context.Background(), workflows.RemoveAccountOptions{Name: name})
		if err != nil {
			return reportError(&spinner.FinalMSG, "remove account", err)
		}

		spinner.FinalMSG = ui.SuccessMark() + " Account " + ui.Highlight.Sprint(result.Name) + " removed"
		return nil
	},
}
