package cmd

import (
	"fmt"

	"github.com/mj1618/visible/internal/inspect"
	"github.com/mj1618/visible/internal/output"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <target>",
	Short: "Check a fixture page against its expectations",
	Long: `Classify every element carrying a data-test attribute. An element must be
visible when its data-visible attribute is present and not "invisible", and
hidden otherwise. Exits 1 if any fixture fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Int("concurrency", 0, "Fixtures classified in parallel (default from config, else 8)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	concurrency := cfg.Verify.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
		if concurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}
	}

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := cmdContext(cmd)
	prog := newProgress(loggerFromContext(ctx))
	result, err := inspect.Verify(ctx, session, concurrency)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Verified %d fixtures", result.Total))

	if err := output.Print(result); err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("verify failed: %d of %d fixtures", result.Failed, result.Total)
	}
	return nil
}
