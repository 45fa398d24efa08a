package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create [USERNAME] [EMAIL]",
	Short: "Create an administrator account",
	Example: `  # Create an admin with a generated password
  tollgatectl admin create root root@example.com

  # Create an admin with a chosen password
  tollgatectl admin create root root@example.com --password "$ROOT_PASSWORD"

  # Type the password without echo
  tollgatectl admin create root root@example.com --prompt
`,
	Args: cobra.ExactArgs(2),
	RunE: adminCreateCmdRun,
}

type adminCreateFlags struct {
	password string
	prompt   bool
}

var adminCreateArgs adminCreateFlags

// readPassword is swapped out in tests so they never touch a terminal.
var readPassword = term.ReadPassword

func init() {
	adminCreateCmd.Flags().StringVar(&adminCreateArgs.password, "password", "",
		"Password for the account. A random one is generated and printed when empty.")
	adminCreateCmd.Flags().BoolVar(&adminCreateArgs.prompt, "prompt", false,
		"Read the password from the terminal without echo.")
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func adminCreateCmdRun(cmd *cobra.Command, args []string) error {
	if adminCreateArgs.prompt && adminCreateArgs.password != "" {
		return errors.New("--password and --prompt cannot be used together")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	pepper, err := cryptox.LoadOrCreatePepper(rootArgs.pepperFile)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	password := adminCreateArgs.password
	if adminCreateArgs.prompt {
		if password, err = promptPassword(cmd); err != nil {
			return err
		}
	}
	generated := password == ""
	if generated {
		if password, err = cryptox.GeneratePassword(); err != nil {
			return err
		}
	}

	auth := &service.AuthService{Store: db, Hasher: cryptox.NewPasswordHasher(pepper)}
	u, err := auth.Register(ctx, args[0], args[1], password)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	if u, err = (&service.UserService{Store: db}).Promote(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to grant admin: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "✔ created admin %s (%s)\n", u.Username, u.ID); err != nil {
		return err
	}
	if generated {
		_, err = fmt.Fprintf(out, "password: %s\n", password)
	}
	return err
}

func promptPassword(cmd *cobra.Command) (string, error) {
	if _, err := fmt.Fprint(cmd.ErrOrStderr(), "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(pw) == 0 {
		return "", errors.New("empty password")
	}
	return string(pw), nil
}
