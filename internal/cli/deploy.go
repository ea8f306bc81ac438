package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipsite-io/shipsite/internal/deploy"
	"github.com/shipsite-io/shipsite/internal/logging"
	"github.com/shipsite-io/shipsite/internal/site"
)

var deployDebug bool

var deployCmd = &cobra.Command{
	Use:   "deploy <repository-url>",
	Short: "Deploy a repository as a static website",
	Long: `Clones the repository, detects its framework, builds it and uploads
the static output to the site bucket. The first deploy provisions the
bucket; later deploys reuse it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVar(&deployDebug, "debug", false, "Print artifact diagnostics during upload")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repoURL := args[0]

	if deployDebug {
		logging.Init("debug")
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}

	if err := sess.State.Lock(); err != nil {
		return err
	}
	defer sess.State.Unlock()

	pipeline := &deploy.Pipeline{
		Store:  sess.Store,
		State:  sess.State,
		Runner: site.ExecRunner{},
		Debug:  deployDebug,
	}

	fmt.Printf("Deploying %s...\n\n", repoURL)
	res, err := pipeline.Deploy(ctx, repoURL)
	if err != nil {
		return err
	}

	fmt.Println("\nDeploy complete!")
	fmt.Printf("  Repository: %s\n", res.RepoName)
	fmt.Printf("  Framework:  %s\n", res.Framework)
	fmt.Printf("  Bucket:     %s", res.Bucket)
	if res.BucketCreated {
		fmt.Print(" (created)")
	}
	fmt.Println()
	fmt.Printf("  Uploaded:   %d objects\n", res.Uploaded)
	fmt.Printf("\nWebsite URL: %s\n", res.URL)
	return nil
}
