package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
)

var licenseCmd = &cobra.Command{
	Use:     "license",
	Aliases: []string{"licenses"},
	Short:   "Inspect licenses",
}

var licenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every license",
	Args:  cobra.NoArgs,
	RunE:  licenseListCmdRun,
}

var licenseVerifyCmd = &cobra.Command{
	Use:   "verify [LICENSE_ID]",
	Short: "Recompute the signature of a stored license",
	Long: `Recompute the signature of a stored license with the configured license
secret (TOLLGATE_LICENSE_SECRET, falling back to TOLLGATE_JWT_SECRET) and
compare it with the stored value.`,
	Example: `  TOLLGATE_LICENSE_SECRET=... tollgatectl license verify LIC-01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV`,
	Args:    cobra.ExactArgs(1),
	RunE:    licenseVerifyCmdRun,
}

type licenseVerifyFlags struct {
	secret string
}

var licenseVerifyArgs licenseVerifyFlags

// errLicenseInvalid makes the command exit non-zero on a failed check.
var errLicenseInvalid = errors.New("license failed verification")

func init() {
	licenseVerifyCmd.Flags().StringVar(&licenseVerifyArgs.secret, "secret", "",
		"License signing secret. Overrides the environment.")
	licenseCmd.AddCommand(licenseListCmd)
	licenseCmd.AddCommand(licenseVerifyCmd)
	rootCmd.AddCommand(licenseCmd)
}

func licenseListCmdRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	licenses, err := (&service.LicenseService{Store: db}).List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(licenses))
	for _, l := range licenses {
		rows = append(rows, []string{l.ID, l.UserID, string(l.PlanType), string(l.Status), l.IssuedAt.Format("2006-01-02T15:04:05Z")})
	}
	printTable(cmd.OutOrStdout(), []string{"id", "user", "plan", "status", "issued"}, rows)
	return nil
}

func licenseVerifyCmdRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	cfg := app.LoadConfig()
	if licenseVerifyArgs.secret != "" {
		cfg.LicenseSecret = licenseVerifyArgs.secret
	}
	signer, err := app.LicenseSigner(cfg)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := &service.LicenseService{Store: db, Signer: signer}
	l, err := svc.Get(ctx, args[0])
	if err != nil {
		return err
	}

	v, err := svc.Classify(l)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", l.ID, v.Message, v.Status); err != nil {
		return err
	}
	if !v.Valid {
		return errLicenseInvalid
	}
	return nil
}
