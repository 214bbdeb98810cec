package cmd

import (
	"fmt"

	"github.com/mj1618/visible/internal/model"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture <target>",
	Short: "Save a page as a YAML snapshot",
	Long: `Capture the element tree, attributes, geometry and window state of a page
into a YAML snapshot. Snapshots can be passed to every other command in place
of a URL and are classified without a browser.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().StringP("output", "o", "", "Snapshot file to write (default: stdout)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := cmdContext(cmd)
	page, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}

	if out == "" {
		return model.EncodeSnapshot(cmd.OutOrStdout(), page)
	}
	if err := model.SaveSnapshot(out, page); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	loggerFromContext(ctx).Info("snapshot written", "path", out, "elements", len(model.FlattenElements(page.Elements)))
	return nil
}
