package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/output"
	"github.com/spf13/cobra"
)

// DiffResult is the output of the diff command.
type DiffResult struct {
	OK      bool           `yaml:"ok"      json:"ok"`
	Action  string         `yaml:"action"  json:"action"`
	Before  string         `yaml:"before"  json:"before"`
	After   string         `yaml:"after"   json:"after"`
	Changes []model.Change `yaml:"changes" json:"changes"`
}

var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two captures of a page",
	Long: `Classify both targets and list elements that were added, removed or changed
between them. Elements are matched by ID, so compare captures of the same
document, e.g. before and after a class toggle.

Examples:
  visible diff before.yaml after.yaml
  visible diff before.yaml after.yaml --visibility-only`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("visibility-only", false, "Only report elements whose visibility flipped")
}

func runDiff(cmd *cobra.Command, args []string) error {
	visOnly, _ := cmd.Flags().GetBool("visibility-only")
	ctx := cmdContext(cmd)
	backend, _ := cmd.Flags().GetString("backend")

	before, err := annotatedTarget(ctx, backend, args[0])
	if err != nil {
		return err
	}
	after, err := annotatedTarget(ctx, backend, args[1])
	if err != nil {
		return err
	}

	changes := model.DiffElements(before, after)
	if visOnly {
		changes = model.VisibilityChanges(changes)
	}
	for _, c := range changes {
		loggerFromContext(ctx).Debug(c.String())
	}
	return output.Print(DiffResult{
		OK:      true,
		Action:  "diff",
		Before:  args[0],
		After:   args[1],
		Changes: changes,
	})
}

// annotatedTarget opens target, classifies every element and returns the
// flattened tree.
func annotatedTarget(ctx context.Context, backend, target string) ([]model.FlatElement, error) {
	session, err := openTarget(ctx, backend, target)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	page, err := session.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	elements, err := model.Annotate(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	return model.FlattenElements(elements), nil
}
