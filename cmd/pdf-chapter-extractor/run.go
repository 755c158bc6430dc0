package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gazza2577/pdf-chapter-extractor/internal/extract"
	"github.com/gazza2577/pdf-chapter-extractor/internal/pdfinfo"
	"github.com/gazza2577/pdf-chapter-extractor/internal/session"
	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactively pick a PDF and export chapters to text files",
	Long: `Run starts an interactive session: it lists the PDF files in the working
directory, derives chapter boundaries from the selected document's bookmark
outline (falling back to a chapter file or manual entry), asks which chapters
to export (e.g. 1 or 1-3,5), and writes one text file per chapter alongside
the source PDF.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := sessionConfig(cmd)

		// Verified before any prompting; nothing downstream can
		// succeed without the extraction executable.
		extractor, err := extract.NewPdftotext(cfg.Extractor.Command, cfg.Extractor.Encoding)
		if err != nil {
			return err
		}

		s := session.New(cfg, pdfinfo.New(), extractor, os.Stdin, os.Stdout)
		return s.Run()
	},
}

// sessionConfig merges flags and config file values into a SessionConfig.
func sessionConfig(cmd *cobra.Command) types.SessionConfig {
	dir, _ := cmd.Flags().GetString("dir")
	chaptersFile, _ := cmd.Flags().GetString("chapters-file")

	return types.SessionConfig{
		Dir:          dir,
		ChaptersFile: chaptersFile,
		Extractor: types.ExtractorConfig{
			Command:  viper.GetString("extractor.command"),
			Encoding: viper.GetString("extractor.encoding"),
		},
		Output: types.OutputConfig{
			Dir:               viper.GetString("output.dir"),
			MaxFilenameLength: viper.GetInt("output.max_filename_length"),
		},
	}
}

func init() {
	runCmd.Flags().String("dir", ".", "directory to scan for PDF files")
	runCmd.Flags().String("chapters-file", "", "YAML chapter file used when the outline yields no chapters")
	runCmd.Flags().String("command", extract.DefaultCommand, "text extraction executable")
	runCmd.Flags().String("encoding", "", "output encoding passed to the extraction executable")
	runCmd.Flags().String("output-dir", "", "directory for output files (default: alongside the source PDF)")
	runCmd.Flags().Int("max-filename-length", types.DefaultMaxFilenameLength, "maximum slug length in output filenames")

	viper.SetDefault("extractor.command", extract.DefaultCommand)
	viper.SetDefault("output.max_filename_length", types.DefaultMaxFilenameLength)
	_ = viper.BindPFlag("extractor.command", runCmd.Flags().Lookup("command"))
	_ = viper.BindPFlag("extractor.encoding", runCmd.Flags().Lookup("encoding"))
	_ = viper.BindPFlag("output.dir", runCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("output.max_filename_length", runCmd.Flags().Lookup("max-filename-length"))

	rootCmd.AddCommand(runCmd)
}
