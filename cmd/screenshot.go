package cmd

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/mj1618/visible/internal/annotate"
	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/platform"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <target>",
	Short: "Save a screenshot, optionally boxing visible and hidden elements",
	Long: `Save a PNG of the page viewport.

With --annotate every element is boxed and labelled with its ID: green when
visible, red when hidden. Snapshots have no pixels, so their screenshots are a
blank viewport-sized canvas, useful together with --annotate.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringP("output", "o", "screenshot.png", "PNG file to write")
	screenshotCmd.Flags().Bool("annotate", false, "Box elements by visibility")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	annot, _ := cmd.Flags().GetBool("annotate")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := cmdContext(cmd)
	logger := loggerFromContext(ctx)

	var page *model.Page
	if annot {
		if page, err = session.Snapshot(ctx); err != nil {
			return err
		}
	}

	var img image.Image
	data, err := session.Screenshot(ctx)
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		if page == nil {
			if page, err = session.Snapshot(ctx); err != nil {
				return err
			}
		}
		logger.Debug("backend has no screenshots, using a blank canvas", "viewport", page.Viewport)
		img = annotate.Blank(page.Viewport[0], page.Viewport[1])
	case err != nil:
		return fmt.Errorf("screenshot: %w", err)
	default:
		if img, err = annotate.Decode(data); err != nil {
			return err
		}
	}

	if annot {
		elements, err := model.Annotate(ctx, page)
		if err != nil {
			return err
		}
		img = annotate.Draw(img, model.FlattenElements(elements), page.Viewport)
	}

	encoded, err := annotate.Encode(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	logger.Info("screenshot written", "path", out)
	return nil
}
