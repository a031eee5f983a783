package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allegro-music/allegro/internal/core/ports"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the first user, who becomes an admin",
	Long: `Create the first user of an empty catalog. The user is made an admin.

Fails once any user exists; further users are added through /auth/adduser
with an admin token.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

var countUsersCmd = &cobra.Command{
	Use:   "count-users",
	Short: "Print the number of users",
	Args:  cobra.NoArgs,
	RunE:  runCountUsers,
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(countUsersCmd)

	bootstrapCmd.Flags().String("username", "", "admin username (required)")
	bootstrapCmd.Flags().String("password", "", "admin password (required)")
	_ = bootstrapCmd.MarkFlagRequired("username")
	_ = bootstrapCmd.MarkFlagRequired("password")
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.auth.AddUser(cmd.Context(), ports.AddUserInput{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("bootstrap %s: %w", username, err)
	}
	if !res.Bootstrap {
		return fmt.Errorf("bootstrap %s: user created without admin rights", username)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %q\n", username)
	return nil
}

func runCountUsers(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	n, err := a.auth.CountUsers(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}
