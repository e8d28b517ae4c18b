package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atobusu/atobusu/pkg/atobusu"
	"github.com/atobusu/atobusu/pkg/atobusu/dataio"
	"github.com/atobusu/atobusu/pkg/atobusu/output"
	"github.com/atobusu/atobusu/pkg/atobusu/templates"
)

const version = "1.0.0"

var (
	flagTemplate string
	flagData     string
	flagOut      string
	flagFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "atobusu",
	Short: "Generate HTML/PHP marketing pages from templates and structured data",
	Long: `Atobusu merges structured product data (JSON/YAML) into HTML and PHP
templates, preserving embedded PHP function calls and normalizing
Japanese text on the way.`,
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a template with a data file and write the result",
	RunE:  runRender,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a template for syntax problems and report its placeholders",
	RunE:  runValidate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atobusu version %s\n", version)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "template file name (relative to the template directory)")
	renderCmd.Flags().StringVarP(&flagData, "data", "d", "", "JSON or YAML data file")
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file name (defaults to the template name)")
	renderCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format override (html, php, mixed)")
	_ = renderCmd.MarkFlagRequired("template")
	_ = renderCmd.MarkFlagRequired("data")

	validateCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "template file name (relative to the template directory)")
	_ = validateCmd.MarkFlagRequired("template")

	rootCmd.AddCommand(renderCmd, validateCmd, versionCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	config := atobusu.GetGlobalConfig()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := atobusu.GetLogger()

	data, err := dataio.ParseFile(flagData)
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid data in %s: %w", flagData, err)
	}

	manager := templates.NewManager(config.TemplateDir)
	out, err := manager.Render(flagTemplate, data.Context())
	if err != nil {
		return err
	}

	if flagFormat != "" {
		f := atobusu.OutputFormat(flagFormat)
		if !f.Valid() {
			return fmt.Errorf("unsupported output format: %s", flagFormat)
		}
		out.Format = f
	}

	outName := flagOut
	if outName == "" {
		outName = flagTemplate
	}

	writer := output.NewWriter(config.OutputDir)
	if err := writer.WriteOutput(out, outName); err != nil {
		return err
	}

	logger.Info("render finished",
		zap.String("template", flagTemplate),
		zap.String("render_id", out.RenderID),
		zap.String("output", outName))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	config := atobusu.GetGlobalConfig()
	manager := templates.NewManager(config.TemplateDir)

	body, meta, err := manager.Load(flagTemplate)
	if err != nil {
		return err
	}

	regions, err := atobusu.Tokenize(body)
	if err != nil {
		return fmt.Errorf("template %s is invalid: %w", flagTemplate, err)
	}

	counts := map[atobusu.PatternID]int{}
	literals := 0
	for _, r := range regions {
		if r.Type == atobusu.RegionLiteral {
			literals++
			continue
		}
		counts[r.Pattern]++
	}

	fmt.Printf("template: %s\n", flagTemplate)
	fmt.Printf("format:   %s\n", manager.Format(flagTemplate, meta, body))
	fmt.Printf("regions:  %d (%d literal)\n", len(regions), literals)
	for _, rule := range atobusu.PatternCatalog() {
		if n := counts[rule.ID]; n > 0 {
			fmt.Printf("  %-14s %d\n", rule.ID, n)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
