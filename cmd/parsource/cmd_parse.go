package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsource/lang"
	"github.com/dhamidi/parsource/parse"
	"github.com/dhamidi/parsource/render"
)

func newParseCmd() *cobra.Command {
	var configFile string
	var expr bool
	var normalize bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse source files and print their outline trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			for _, filename := range args {
				if err := parseFile(cmd, cfg, filename, expr, normalize); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("lang", "l", "", "language table to use (overrides file extension)")
	cmd.Flags().Int("lookahead", parse.DefaultLookahead, "scanner window size in bytes")
	cmd.Flags().Bool("offsets", true, "record source offsets on nodes")
	cmd.Flags().StringP("format", "f", "tree", "output format (tree, xml)")
	cmd.Flags().String("langs-dir", "", "directory of YAML language definitions to load")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default parsource.yaml)")
	cmd.Flags().BoolVar(&expr, "expr", false, "use the expression classifier instead of the block classifier")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "normalize comments and statements after extraction")

	return cmd
}

func parseFile(cmd *cobra.Command, cfg *Config, filename string, expr, normalize bool) error {
	text, err := readSource(filename)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	table, err := tableFor(cmd, cfg, filename)
	if err != nil {
		return err
	}

	var opts []parse.Option
	if cfg.Lookahead > 0 {
		opts = append(opts, parse.WithLookahead(cfg.Lookahead))
	}
	var classifier *parse.Classifier
	if expr {
		classifier = parse.NewExpressionClassifier(text, table, opts...)
	} else {
		classifier = parse.NewBlockClassifier(text, table, opts...)
	}

	var extractorOpts []parse.ExtractorOption
	if !cfg.Offsets {
		extractorOpts = append(extractorOpts, parse.WithoutOffsets())
	}
	extractor := parse.NewExtractor(extractorOpts...)

	diags, fatal := extractor.Process(classifier)
	for _, diag := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, diag)
	}

	root := extractor.Result()
	if normalize {
		for _, diag := range parse.Normalize(root) {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", filename, diag.Node.Name, diag.Message)
		}
	}

	switch cfg.Format {
	case "tree":
		fmt.Print(render.Render(root))
	case "xml":
		fmt.Println(render.XML(root))
	default:
		return fmt.Errorf("unknown format: %s (expected tree or xml)", cfg.Format)
	}

	if fatal != nil {
		return fmt.Errorf("parse %s: %w", filename, fatal)
	}
	return nil
}

// readSource reads the named file, or stdin when the name is "-".
func readSource(filename string) (string, error) {
	if filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(filename)
	return string(data), err
}

// tableFor picks the delimiter table: an explicit --lang flag wins, then
// the file extension, then the configured default language.
func tableFor(cmd *cobra.Command, cfg *Config, filename string) (*parse.Table, error) {
	if cmd.Flags().Changed("lang") {
		table, ok := lang.Lookup(cfg.Lang)
		if !ok {
			return nil, fmt.Errorf("unknown language: %s", cfg.Lang)
		}
		return table, nil
	}
	if table, ok := lang.ByExtension(filepath.Ext(filename)); ok {
		return table, nil
	}
	table, ok := lang.Lookup(cfg.Lang)
	if !ok {
		return nil, fmt.Errorf("unknown language: %s", cfg.Lang)
	}
	return table, nil
}
