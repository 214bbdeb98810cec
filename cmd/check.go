package cmd

import (
	"fmt"

	"github.com/mj1618/visible/internal/inspect"
	"github.com/mj1618/visible/internal/output"
	"github.com/spf13/cobra"
)

// CheckResult is the output of the check command.
type CheckResult struct {
	OK      bool                 `yaml:"ok"              json:"ok"`
	Action  string               `yaml:"action"          json:"action"`
	Target  string               `yaml:"target"          json:"target"`
	Expect  string               `yaml:"expect"          json:"expect"`
	Pass    bool                 `yaml:"pass"            json:"pass"`
	Results []inspect.NodeResult `yaml:"results"         json:"results"`
	Error   string               `yaml:"error,omitempty" json:"error,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <target> <node>...",
	Short: "Check whether nodes are visible",
	Long: `Classify each node as visible or hidden.

A node is "window", "document" or a CSS selector; a selector may match several
elements. Exits 0 when every node matches the expectation (visible unless
--expect hidden), 1 otherwise.

Examples:
  visible check https://example.com '#cookie-banner'
  visible check page.yaml window document
  visible check page.yaml '[display=none]' --expect hidden`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("expect", "visible", "Expected state: visible, hidden")
}

func runCheck(cmd *cobra.Command, args []string) error {
	expect, _ := cmd.Flags().GetString("expect")
	if expect != "visible" && expect != "hidden" {
		return fmt.Errorf("invalid --expect %q (use visible or hidden)", expect)
	}

	target, exprs := args[0], args[1:]
	session, err := openSession(cmd, target)
	if err != nil {
		return err
	}
	defer session.Close()

	results, err := inspect.Check(cmdContext(cmd), session, exprs)
	if err != nil {
		return err
	}

	result := CheckResult{
		OK:      true,
		Action:  "check",
		Target:  target,
		Expect:  expect,
		Pass:    inspect.AllMatch(results, expect == "hidden"),
		Results: results,
	}
	if !result.Pass {
		result.Error = fmt.Sprintf("not every node is %s", expect)
	}
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("check failed: %s", result.Error)
	}
	return nil
}
