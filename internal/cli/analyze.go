package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/spf13/cobra"
)

var analyzeOpts struct {
	File           string
	CompanyName    string
	JobTitle       string
	JobDescription string
	StorageDir     string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline on a PDF and print the record",
	Long: `Run the full pipeline on a PDF and print the stored record as JSON.
Pass --job-description to get a job-match analysis instead of a general one.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.File, "file", "f", "", "PDF résumé to analyze")
	f.StringVar(&analyzeOpts.CompanyName, "company", "", "Target company name")
	f.StringVar(&analyzeOpts.JobTitle, "job-title", "", "Target job title")
	f.StringVar(&analyzeOpts.JobDescription, "job-description", "", "Target job description")
	f.StringVar(&analyzeOpts.StorageDir, "storage-dir", "./uploads", "Directory for the stored PDF and preview")
	_ = analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	file, err := readPDF(analyzeOpts.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	blobs, err := storage.NewLocalStore(analyzeOpts.StorageDir)
	if err != nil {
		return err
	}
	ai, _, err := service.NewAIProvider(ctx, blobs)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	uc := usecase.NewIngestionUsecase(usecase.Deps{
		Blobs:      blobs,
		KV:         repository.NewMemoryKV(),
		AI:         ai,
		Rasterizer: rasterize.New(nil),
	})

	var job *model.JobTarget
	if analyzeOpts.JobDescription != "" {
		job = &model.JobTarget{
			CompanyName:    analyzeOpts.CompanyName,
			JobTitle:       analyzeOpts.JobTitle,
			JobDescription: analyzeOpts.JobDescription,
		}
	}

	out, err := uc.Analyze(ctx, usecase.Submission{
		Files: []*intake.File{file},
		Job:   job,
		OnStatus: func(s string) {
			fmt.Fprintln(cmd.ErrOrStderr(), s)
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out.Resume)
}
