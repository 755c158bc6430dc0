// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-chapter-extractor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-chapter-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-chapter-extractor",
	Short: "Extract PDF chapters to plain-text files",
	Long: `pdf-chapter-extractor splits a PDF into per-chapter plain-text files.
Chapter boundaries come from the PDF's bookmark outline when it looks like a
chapter list, from a saved YAML chapter file, or from manual entry.

Text extraction is delegated to the pdftotext executable (poppler-utils),
invoked once per selected chapter with that chapter's page range.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-chapter-extractor.yaml or ~/.config/pdf-chapter-extractor/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-chapter-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-chapter-extractor"))
		}
	}

	viper.SetEnvPrefix("PDF_CHAPTER_EXTRACTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
