package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the stored credentials",
	Long: `Checks that the configured credentials are valid by asking the
provider who they belong to.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}

	fmt.Print("Verifying credentials... ")
	account, err := sess.Store.VerifyIdentity(ctx)
	if err != nil {
		fmt.Println("FAILED")
		return fmt.Errorf("credential verification failed: %w", err)
	}
	fmt.Println("OK")

	fmt.Printf("\nAccount: %s\n", account)
	fmt.Printf("Region:  %s\n", sess.Creds.Region)

	s, err := sess.State.Load()
	if err != nil {
		return err
	}
	fmt.Printf("Tracked: %d resource(s)\n", len(s.Resources))
	return nil
}
