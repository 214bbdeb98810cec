package cmd

import (
	"github.com/mj1618/visible/internal/inspect"
	"github.com/mj1618/visible/internal/output"
	"github.com/mj1618/visible/internal/platform"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <target>",
	Short: "Read the element tree with visibility flags",
	Long:  "Read the element tree of a page and mark every element visible (vis: true) or hidden (vis: false).",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().String("tags", "", "Comma-separated tags to include (e.g. \"button,a,input\")")
	readCmd.Flags().Bool("visible-only", false, "Only include visible elements")
	readCmd.Flags().String("bbox", "", "Only include elements within bounding box (x,y,w,h)")
	readCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
}

func runRead(cmd *cobra.Command, args []string) error {
	tagsStr, _ := cmd.Flags().GetString("tags")
	visibleOnly, _ := cmd.Flags().GetBool("visible-only")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	flat, _ := cmd.Flags().GetBool("flat")

	opts := inspect.ReadOptions{VisibleOnly: visibleOnly, Flat: flat}
	opts.Tags = inspect.ParseTags(tagsStr)
	if bboxStr != "" {
		bbox, err := platform.ParseBBox(bboxStr)
		if err != nil {
			return err
		}
		opts.BBox = bbox
	}

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer session.Close()

	result, err := inspect.Read(cmdContext(cmd), session, opts)
	if err != nil {
		return err
	}
	return output.Print(result)
}
