package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gazza2577/pdf-chapter-extractor/internal/extract"
	"github.com/gazza2577/pdf-chapter-extractor/internal/outline"
	"github.com/gazza2577/pdf-chapter-extractor/internal/pdfinfo"
	"github.com/gazza2577/pdf-chapter-extractor/internal/ranges"
	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Export chapters to text files without prompting",
	Long: `Extract exports the selected chapters of a PDF in one shot. Chapter
boundaries come from the bookmark outline or, with --chapters-file, from a
saved YAML chapter file. --select takes the same expression the interactive
session uses (e.g. 1 or 1-3,5); omitting it exports every chapter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]

		extractor, err := extract.NewPdftotext(
			viper.GetString("extractor.command"),
			viper.GetString("extractor.encoding"),
		)
		if err != nil {
			return err
		}

		provider := pdfinfo.New()
		totalPages, err := provider.PageCount(pdfPath)
		if err != nil {
			return err
		}

		chapters, err := loadChapters(cmd, provider, pdfPath, totalPages)
		if err != nil {
			return err
		}
		resolved, err := ranges.Resolve(chapters, totalPages)
		if err != nil {
			return err
		}

		selectExpr, _ := cmd.Flags().GetString("select")
		selected := make([]int, 0, len(chapters))
		if selectExpr == "" {
			for _, c := range chapters {
				selected = append(selected, c.Number)
			}
		} else {
			selected, err = ranges.ParseSelection(selectExpr, len(chapters))
			if err != nil {
				return err
			}
		}

		flagDir, _ := cmd.Flags().GetString("output-dir")
		outDir := resolveOutputDir(flagDir, pdfPath)
		docName := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		alloc := extract.NewFilenameAllocator(docName, viper.GetInt("output.max_filename_length"))

		succeeded, skipped, failed := 0, 0, 0
		for _, n := range selected {
			r := resolved[n-1]
			req := types.ExportRequest{
				Number:    r.Number,
				Title:     r.Title,
				StartPage: r.StartPage,
				EndPage:   r.EndPage,
				Filename:  filepath.Join(outDir, alloc.Allocate(r.Number, r.Title)),
			}
			switch exportChapter(cmd.OutOrStdout(), extractor, pdfPath, req) {
			case types.ExportDone:
				succeeded++
			case types.ExportSkipped:
				skipped++
			case types.ExportFailed:
				failed++
			}
		}

		if succeeded == 0 && skipped == 0 {
			return fmt.Errorf("no chapters were exported")
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d chapters failed", failed, len(selected))
		}
		return nil
	},
}

// resolveOutputDir picks the output directory: the --output-dir flag wins,
// then the output.dir config key, then the directory of the source PDF.
func resolveOutputDir(flagValue, pdfPath string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := viper.GetString("output.dir"); dir != "" {
		return dir
	}
	return filepath.Dir(pdfPath)
}

// exportChapter extracts a single chapter and reports the outcome. Output
// files surviving from an earlier run are left alone.
func exportChapter(out io.Writer, extractor extract.Extractor, pdfPath string, req types.ExportRequest) types.ExportStatus {
	if _, err := os.Stat(req.Filename); err == nil {
		fmt.Fprintf(out, "skipped: %s (already exists)\n", filepath.Base(req.Filename))
		return types.ExportSkipped
	}
	if err := extractor.Extract(pdfPath, req); err != nil {
		fmt.Fprintf(out, "failed:  chapter %d (%v)\n", req.Number, err)
		return types.ExportFailed
	}
	fmt.Fprintf(out, "created: %s (pages %d-%d)\n", filepath.Base(req.Filename), req.StartPage, req.EndPage)
	return types.ExportDone
}

// loadChapters reads chapters from a chapter file when given, and from the
// document outline otherwise.
func loadChapters(cmd *cobra.Command, provider pdfinfo.Provider, pdfPath string, totalPages int) ([]types.Chapter, error) {
	chaptersFile, _ := cmd.Flags().GetString("chapters-file")
	if chaptersFile != "" {
		cf, err := outline.ReadChapterFile(chaptersFile)
		if err != nil {
			return nil, err
		}
		return cf.Chapters, nil
	}

	entries, err := provider.ReadOutline(pdfPath)
	if err != nil {
		return nil, err
	}
	chapters, err := outline.Analyze(entries, totalPages)
	if errors.Is(err, outline.ErrNoChapters) {
		return nil, fmt.Errorf("%w (supply --chapters-file or use the interactive run command)", err)
	}
	return chapters, err
}

func init() {
	extractCmd.Flags().String("select", "", "chapters to export, e.g. 1 or 1-3,5 (default: all)")
	extractCmd.Flags().String("chapters-file", "", "YAML chapter file to use instead of the outline")
	extractCmd.Flags().String("output-dir", "", "directory for output files (default: alongside the source PDF)")

	rootCmd.AddCommand(extractCmd)
}
