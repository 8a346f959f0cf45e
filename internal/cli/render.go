package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	File string
	Out  string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render page 1 of a PDF to a PNG preview",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.File, "file", "f", "", "PDF file to render")
	renderCmd.Flags().StringVarP(&renderOpts.Out, "out", "o", rasterize.PreviewName, "Output PNG path")
	_ = renderCmd.MarkFlagRequired("file")
}

func runRender(cmd *cobra.Command, _ []string) error {
	file, err := readPDF(renderOpts.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res := rasterize.New(nil).Render(cmd.Context(), file.Data)
	if !res.OK() {
		return fmt.Errorf("%s", res.Err)
	}
	if err := os.WriteFile(renderOpts.Out, res.File.Data, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", renderOpts.Out, res.File.Width, res.File.Height)
	return nil
}

// readPDF loads path, applies the upload intake rules to it and reports the
// accepted file on w.
func readPDF(path string, w io.Writer) (*intake.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sel := intake.NewSelector(func(f *intake.File) {
		if f != nil {
			fmt.Fprintf(w, "selected %s (%d bytes)\n", f.Name, f.Size)
		}
	})
	return sel.Offer([]*intake.File{{
		Name: path,
		Size: int64(len(data)),
		Data: data,
	}})
}
