package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect and repair stored identities",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every identity",
	Args:  cobra.NoArgs,
	RunE:  usersListCmdRun,
}

var usersNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite roles and plans that are not in canonical form",
	Args:  cobra.NoArgs,
	RunE:  usersNormalizeCmdRun,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersNormalizeCmd)
	rootCmd.AddCommand(usersCmd)
}

func usersListCmdRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := (&service.UserService{Store: db}).List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Username, u.Email, string(u.Role), string(u.Plan)})
	}
	printTable(cmd.OutOrStdout(), []string{"id", "username", "email", "role", "plan"}, rows)
	return nil
}

func usersNormalizeCmdRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := (&service.UserService{Store: db}).NormalizeIdentities(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✔ normalized %d identities\n", n)
	return err
}
