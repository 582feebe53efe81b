// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"credshare/cmd/client/cmd/credential"
	"credshare/cmd/client/cmd/request"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check server connectivity and authentication",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Server:  %s\n", cfg.ServerAddress)

		if err := app.CheckConnection(); err != nil {
			fmt.Printf("Health:  %s (%v)\n", color.RedString("unreachable"), err)
		} else {
			fmt.Printf("Health:  %s\n", color.GreenString("ok"))
		}

		if app.IsAuthenticated() {
			fmt.Printf("Token:   %s\n", color.GreenString("configured"))
		} else {
			fmt.Printf("Token:   %s (run 'credshare token set')\n", color.YellowString("missing"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(credential.Cmd)
	credential.Cmd.AddCommand(credential.ShareCmd)
	credential.Cmd.AddCommand(credential.ViewCmd)
	credential.Cmd.AddCommand(credential.ListCmd)
	credential.Cmd.AddCommand(credential.ExpireCmd)
	credential.Cmd.AddCommand(credential.DeleteCmd)
	credential.Cmd.AddCommand(credential.TypesCmd)

	rootCmd.AddCommand(request.Cmd)
	request.Cmd.AddCommand(request.CreateCmd)
	request.Cmd.AddCommand(request.FulfillCmd)
	request.Cmd.AddCommand(request.RevealCmd)
	request.Cmd.AddCommand(request.RejectCmd)
	request.Cmd.AddCommand(request.ListCmd)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tokenCmd)
}
