package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shipsite-io/shipsite/internal/state"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked resources",
	Long: `Shows every resource the tool has provisioned, with its live status
according to the provider.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No resources are being tracked. Run 'shipsite deploy' to create one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Type", "Name", "Status", "Website URL"})

	for _, r := range s.Resources {
		if r.Type != state.ResourceBucket {
			t.AppendRow(table.Row{string(r.Type), r.Name, "unknown type", ""})
			continue
		}

		status := "active"
		exists, err := sess.Store.BucketExists(ctx, r.Name)
		if err != nil {
			status = fmt.Sprintf("error: %v", err)
		} else if !exists {
			status = "not found"
		}

		url := ""
		if exists {
			url = sess.Store.WebsiteURL(r.Name)
		}
		t.AppendRow(table.Row{string(r.Type), r.Name, status, url})
	}

	t.Render()
	return nil
}
