package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shipsite-io/shipsite/internal/config"
	"github.com/shipsite-io/shipsite/internal/deploy"
	"github.com/shipsite-io/shipsite/internal/state"
	"github.com/shipsite-io/shipsite/providers/aws"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure credentials and optionally create a site bucket",
	Long: `Prompts for provider credentials, verifies them and stores them
encrypted under the configuration directory. Optionally provisions the
site bucket right away so the first deploy has a target.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())

	creds, err := promptCredentials(reader)
	if err != nil {
		return err
	}

	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	if err := config.NewStore(dir).Save(creds); err != nil {
		return err
	}
	fmt.Printf("Credentials saved to %s\n", dir)

	store, err := aws.New(ctx, creds)
	if err != nil {
		return err
	}

	fmt.Print("Verifying credentials... ")
	account, err := store.VerifyIdentity(ctx)
	if err != nil {
		fmt.Println("FAILED")
		return fmt.Errorf("credential verification failed: %w", err)
	}
	fmt.Printf("OK (account %s)\n", account)

	fmt.Print("\nCreate a site bucket now? (y/n): ")
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response != "y" && response != "yes" {
		fmt.Println("Skipped. A bucket will be created on the first deploy.")
		return nil
	}

	bucket := deploy.GenerateBucketName()
	fmt.Printf("Creating bucket %s... ", bucket)
	if err := store.CreateSiteBucket(ctx, bucket); err != nil {
		fmt.Println("FAILED")
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	fmt.Println("OK")

	mgr := state.NewManager(statePath(dir))
	if err := mgr.Record(state.Resource{Type: state.ResourceBucket, Name: bucket}); err != nil {
		return err
	}

	fmt.Printf("\nWebsite URL: %s\n", store.WebsiteURL(bucket))
	fmt.Println("Run 'shipsite deploy <repository-url>' to publish a site.")
	return nil
}

// promptCredentials reads the three credential fields interactively. The
// secret is read without terminal echo when stdin is a terminal.
func promptCredentials(reader *bufio.Reader) (config.Credentials, error) {
	var creds config.Credentials

	fmt.Print("AWS access key ID: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return creds, fmt.Errorf("failed to read access key: %w", err)
	}
	creds.AccessKeyID = strings.TrimSpace(line)

	fmt.Print("AWS secret access key: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return creds, fmt.Errorf("failed to read secret key: %w", err)
		}
		creds.SecretAccessKey = strings.TrimSpace(string(secret))
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return creds, fmt.Errorf("failed to read secret key: %w", err)
		}
		creds.SecretAccessKey = strings.TrimSpace(line)
	}

	fmt.Print("Region [us-east-1]: ")
	line, err = reader.ReadString('\n')
	if err != nil {
		return creds, fmt.Errorf("failed to read region: %w", err)
	}
	creds.Region = strings.TrimSpace(line)
	if creds.Region == "" {
		creds.Region = "us-east-1"
	}

	return creds, creds.Validate()
}
