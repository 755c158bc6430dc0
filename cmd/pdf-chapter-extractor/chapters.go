package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gazza2577/pdf-chapter-extractor/internal/outline"
	"github.com/gazza2577/pdf-chapter-extractor/internal/pdfinfo"
	"github.com/gazza2577/pdf-chapter-extractor/internal/ranges"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <file.pdf>",
	Short: "Show chapters detected in a PDF's bookmark outline",
	Long: `Chapters reads the document's bookmark outline, classifies chapter-like
entries, and prints the resulting chapter list with resolved page ranges.
With --save the list is written to a YAML chapter file that run and extract
accept via --chapters-file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		provider := pdfinfo.New()

		totalPages, err := provider.PageCount(pdfPath)
		if err != nil {
			return err
		}
		entries, err := provider.ReadOutline(pdfPath)
		if err != nil {
			return err
		}
		chapters, err := outline.Analyze(entries, totalPages)
		if err != nil {
			return err
		}
		resolved, err := ranges.Resolve(chapters, totalPages)
		if err != nil {
			return err
		}

		for _, r := range resolved {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (pages %d-%d)\n", r.Number, r.Title, r.StartPage, r.EndPage)
		}

		savePath, _ := cmd.Flags().GetString("save")
		if savePath != "" {
			cf := outline.ChapterFile{
				Document:   filepath.Base(pdfPath),
				TotalPages: totalPages,
				Chapters:   chapters,
			}
			if err := outline.WriteChapterFile(savePath, cf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d chapters to %s\n", len(chapters), savePath)
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().String("save", "", "write the detected chapters to a YAML chapter file")

	rootCmd.AddCommand(chaptersCmd)
}
