package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipsite-io/shipsite/internal/deploy"
	"github.com/shipsite-io/shipsite/internal/site"
)

var rollbackAutoApprove bool

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Destroy all tracked resources",
	Long: `Deletes every bucket the tool has provisioned, including their
contents, and clears the tracked state.

This command is the inverse of 'shipsite deploy'.`,
	RunE: runRollback,
}

func init() {
	rollbackCmd.Flags().BoolVar(&rollbackAutoApprove, "auto-approve", false, "Skip interactive approval before destroying resources")
}

func runRollback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}

	s, err := sess.State.Load()
	if err != nil {
		return err
	}
	if len(s.Resources) == 0 {
		fmt.Println("Nothing to roll back: no resources are being tracked.")
		return nil
	}

	fmt.Println("The following resources will be destroyed:")
	for _, r := range s.Resources {
		fmt.Printf("  - %s %s\n", r.Type, r.Name)
	}

	if !rollbackAutoApprove {
		fmt.Print("\nDo you want to destroy these resources? (y/n): ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "yes" {
			fmt.Println("Rollback cancelled.")
			return nil
		}
	}

	if err := sess.State.Lock(); err != nil {
		return err
	}
	defer sess.State.Unlock()

	pipeline := &deploy.Pipeline{
		Store:  sess.Store,
		State:  sess.State,
		Runner: site.ExecRunner{},
	}

	res, err := pipeline.Rollback(ctx)
	if err != nil {
		return err
	}

	for _, name := range res.Deleted {
		fmt.Printf("Deleted %s\n", name)
	}
	for name, ferr := range res.Failed {
		fmt.Printf("Failed to delete %s: %v\n", name, ferr)
	}

	if len(res.Failed) > 0 {
		return fmt.Errorf("rollback finished with %d failure(s); the tracked state was cleared anyway", len(res.Failed))
	}
	fmt.Println("\nRollback complete! All resources have been deleted.")
	return nil
}
