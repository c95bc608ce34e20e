package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"docsmith/internal/config"
	"docsmith/internal/crawler"
	"docsmith/internal/generator"
	"docsmith/internal/github"
	"docsmith/internal/term"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docsmith",
		Short: "Generate API documentation from Python docstrings",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the config file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
}

var (
	outputDir      string
	outputFormat   string
	excludePrivate bool
	githubRepo     string
	githubBranch   string
	verbose        bool
)

func init() {
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config, \"docs\")")
	generateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: markdown, tsx or json (default from config, \"markdown\")")
	generateCmd.Flags().BoolVar(&excludePrivate, "exclude-private", false, "Skip modules under underscore-prefixed directories")
	generateCmd.Flags().StringVar(&githubRepo, "github-repo", "", "GitHub repository URL or local checkout path for source links (default: detect from the package directory)")
	generateCmd.Flags().StringVar(&githubBranch, "branch", "", "Branch for source links (default: detected, then \"main\")")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every processed module")
}

var generateCmd = &cobra.Command{
	Use:   "generate <package-dir>",
	Short: "Generate documentation for a Python package",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		packageDir := args[0]

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Flags override the config file.
		if !cmd.Flags().Changed("output") {
			outputDir = cfg.Output.Dir
		}
		if !cmd.Flags().Changed("format") {
			outputFormat = cfg.Output.Format
		}
		if !cmd.Flags().Changed("exclude-private") {
			excludePrivate = cfg.ExcludePrivate
		}
		if githubRepo == "" {
			githubRepo = cfg.GitHub.Repo
		}
		if githubBranch == "" {
			githubBranch = cfg.GitHub.Branch
		}

		format, err := generator.ParseFormat(outputFormat)
		if err != nil {
			log.Fatalf("Invalid format: %v", err)
		}

		fmt.Printf("📂 Crawling package: %s\n", packageDir)
		modules, err := crawler.NewCrawler(excludePrivate).Discover(packageDir)
		if err != nil {
			log.Fatalf("Crawl failed: %v", err)
		}
		fmt.Printf("🔍 Found %d modules.\n", len(modules))

		repoCfg := github.ResolveRepo(context.Background(), githubRepo, githubBranch, packageDir)
		var linker generator.SourceLinker
		if l := github.NewLinker(repoCfg); l != nil {
			linker = l
			fmt.Printf("🔗 Source links: %s (branch %s)\n", repoCfg.URL, repoCfg.Branch)
		}

		writer := generator.NewWriter(outputDir, format, linker)
		if verbose {
			writer.Progress = func(done, total int, mod crawler.PyModule) {
				fmt.Printf("  [%d/%d] %s\n", done, total, mod.Name)
			}
		}

		fmt.Println("🚀 Generating documentation...")
		start := time.Now()
		summary, err := writer.Run(modules)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}

		fmt.Printf("✅ Done in %v: %d pages written, %d skipped, %d errors. Output: %s\n",
			time.Since(start).Round(time.Millisecond),
			summary.Written, summary.Skipped, summary.Failed, outputDir)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a generated markdown page in the terminal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", args[0], err)
		}

		renderer, err := term.NewMarkdownRenderer(100)
		if err != nil {
			log.Fatalf("Failed to create renderer: %v", err)
		}

		out, err := renderer.Render(string(data))
		if err != nil {
			log.Fatalf("Failed to render %s: %v", args[0], err)
		}
		fmt.Print(out)
	},
}
