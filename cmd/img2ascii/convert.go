package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

var (
	convertAlphabet string
	convertFont     string
	convertFamily   string
	convertFontSize float64
	convertBold     bool
	convertItalic   bool
	convertMetric   string
	convertMode     string
	convertStride   int
	convertPolicy   string
	convertBg       string
	convertFg       string
	convertOpacity  float64
	convertBlend    bool
	convertWorkers  int
	convertCacheDir string
	convertColumns  int
	convertFormat   string
	convertOutput   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert an image into a glyph mosaic",
	Long: `Converts an image into a mosaic of characters from the alphabet.

The output format follows --format, or the extension of --output when no
format is given: .txt text, .html html, .ans ansi, .gif gif (animated GIF
input only), any other image extension a rendered image. Without --output
the mosaic is printed to stdout as text.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	def := img2ascii.DefaultConfig()
	f := convertCmd.Flags()
	f.StringVarP(&convertAlphabet, "alphabet", "a", def.Alphabet, "characters to draw with")
	f.StringVar(&convertFont, "font", "", "path to a .ttf, .otf or .ttc font (default Go Mono)")
	f.StringVar(&convertFamily, "family", "", "font family name written to HTML output")
	f.Float64VarP(&convertFontSize, "font-size", "s", def.Font.Size, "font size in pixels")
	f.BoolVar(&convertBold, "bold", false, "mark the font as bold in HTML output")
	f.BoolVar(&convertItalic, "italic", false, "mark the font as italic in HTML output")
	f.StringVarP(&convertMetric, "metric", "m", def.Metric.String(), "scoring metric (see 'img2ascii metrics')")
	f.StringVar(&convertMode, "mode", def.Mode.String(), "rendering mode: default or inverted")
	f.IntVar(&convertStride, "stride", def.ColumnStride, "column stride for mse and ssim")
	f.StringVarP(&convertPolicy, "policy", "p", def.Policy.String(), "color policy (see 'img2ascii metrics')")
	f.StringVar(&convertBg, "bg", img2ascii.HexColor(def.Background), "background color")
	f.StringVar(&convertFg, "fg", img2ascii.HexColor(def.Foreground), "foreground color")
	f.Float64Var(&convertOpacity, "opacity", def.BackgroundOpacity, "background opacity for image-background")
	f.BoolVar(&convertBlend, "blend", false, "blend glyph shading into the foreground")
	f.IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	f.StringVar(&convertCacheDir, "cache-dir", "", "directory for rendered alphabets")
	f.IntVarP(&convertColumns, "columns", "c", 0, "scale the image to this many characters wide (0 = keep size)")
	f.StringVarP(&convertFormat, "format", "f", "", "output format: text, html, ansi, image or gif")
	f.StringVarP(&convertOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(convertCmd)
}

// buildConfig maps the convert flags onto a Config.
func buildConfig() (img2ascii.Config, error) {
	cfg := img2ascii.DefaultConfig()
	cfg.Alphabet = convertAlphabet
	cfg.FontPath = convertFont
	cfg.CacheDir = convertCacheDir
	cfg.Font = img2ascii.FontDescriptor{
		Family: cfg.Font.Family,
		Size:   convertFontSize,
		Bold:   convertBold,
		Italic: convertItalic,
	}
	if convertFont != "" {
		// Let the font name its own family.
		cfg.Font.Family = ""
	}
	if convertFamily != "" {
		cfg.Font.Family = convertFamily
	}

	var err error
	if cfg.Metric, err = img2ascii.ParseMetric(convertMetric); err != nil {
		return cfg, err
	}
	if cfg.Mode, err = img2ascii.ParseRenderingMode(convertMode); err != nil {
		return cfg, err
	}
	if cfg.Policy, err = img2ascii.ParsePolicy(convertPolicy); err != nil {
		return cfg, err
	}
	if cfg.Background, err = img2ascii.ParseHexColor(convertBg); err != nil {
		return cfg, fmt.Errorf("--bg: %w", err)
	}
	if cfg.Foreground, err = img2ascii.ParseHexColor(convertFg); err != nil {
		return cfg, fmt.Errorf("--fg: %w", err)
	}
	cfg.ColumnStride = convertStride
	cfg.BackgroundOpacity = convertOpacity
	cfg.Blend = convertBlend
	cfg.Workers = convertWorkers
	return cfg, cfg.Validate()
}

// resolveFormat picks the output format from --format or the output
// extension.
func resolveFormat(format, output, input string) (string, error) {
	if format != "" {
		format = strings.ToLower(format)
		switch format {
		case "text", "html", "ansi", "image", "gif":
			return format, nil
		}
		return "", fmt.Errorf("unknown format %q", format)
	}
	if output == "" {
		return "text", nil
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".txt", "":
		return "text", nil
	case ".html", ".htm":
		return "html", nil
	case ".ans", ".ansi":
		return "ansi", nil
	case ".gif":
		if strings.EqualFold(filepath.Ext(input), ".gif") {
			return "gif", nil
		}
	}
	return "image", nil
}

// progressLogger logs conversion progress in ten percent steps.
func progressLogger(label string) img2ascii.ProgressFunc {
	next := 0.1
	return func(fraction float64) {
		if fraction >= next || fraction >= 1 {
			logVerbose("%s: %3.0f%%", label, fraction*100)
			for next <= fraction {
				next += 0.1
			}
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(convertFormat, convertOutput, input)
	if err != nil {
		return err
	}
	if format == "gif" && convertOutput == "" {
		return fmt.Errorf("gif output needs --output")
	}
	if format == "image" && convertOutput == "" {
		return fmt.Errorf("image output needs --output")
	}

	logVerbose("input:   %s", input)
	logVerbose("format:  %s", format)
	logVerbose("metric:  %s (%s), policy %s", cfg.Metric, cfg.Mode, cfg.Policy)

	alphabet, err := cfg.BuildAlphabet()
	if err != nil {
		return fmt.Errorf("build alphabet: %w", err)
	}
	cell := alphabet.CellSize()
	logVerbose("alphabet: %d glyphs, cell %dx%d, font %q", alphabet.Len(), cell.X, cell.Y, alphabet.Font().Family)
	endInit := time.Now()

	scorer, err := cfg.NewScorer(alphabet)
	if err != nil {
		return err
	}
	cache := img2ascii.NewSelectionCache()
	opts := append(cfg.ConverterOptions(), img2ascii.WithSelectionCache(cache))
	policy := cfg.NewPolicy()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if format == "gif" {
		conv := img2ascii.NewAnimationConverter(scorer, policy, opts...)
		if err := conv.ConvertFile(ctx, input, convertOutput, progressLogger("frames")); err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), endInit.Sub(start), time.Since(endInit), cache)
		return nil
	}

	img, err := imageutil.LoadImage(input)
	if err != nil {
		return err
	}
	if convertColumns > 0 {
		img = imageutil.FitWidth(img, convertColumns*cell.X)
		logVerbose("scaled to %dx%d", img.Width, img.Height)
	}

	var text string
	switch format {
	case "image":
		conv := img2ascii.NewImageConverter(scorer, policy, opts...)
		out, err := conv.Convert(ctx, img, progressLogger("tiles"))
		if err != nil {
			return err
		}
		if err := imageutil.SaveImage(out, convertOutput); err != nil {
			return fmt.Errorf("write %s: %w", convertOutput, err)
		}
	default:
		text, err = convertText(ctx, format, scorer, policy, img, opts)
		if err != nil {
			return err
		}
		if convertOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			logVerbose("converted in %v", time.Since(endInit))
			return nil
		}
		if err := os.WriteFile(convertOutput, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", convertOutput, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", convertOutput)
	printReport(cmd.OutOrStdout(), endInit.Sub(start), time.Since(endInit), cache)
	if text != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Output length:    %d bytes\n", len(text))
	}
	return nil
}

// convertText runs one of the string producing converters.
func convertText(ctx context.Context, format string, scorer img2ascii.Scorer, policy img2ascii.ColorPolicy,
	img *imageutil.PixelBuffer, opts []img2ascii.ConverterOption) (string, error) {
	var conv *img2ascii.Converter[string]
	switch format {
	case "html":
		conv = img2ascii.NewMarkupConverter(scorer, policy, opts...)
	case "ansi":
		conv = img2ascii.NewANSIConverter(scorer, policy, termenv.EnvColorProfile(), opts...)
	default:
		conv = img2ascii.NewTextConverter(scorer, opts...)
	}
	return conv.Convert(ctx, img, progressLogger("tiles"))
}

func printReport(w io.Writer, initTime, convertTime time.Duration, cache *img2ascii.SelectionCache) {
	hits, misses, rate := cache.Stats()
	fmt.Fprintf(w, "  Initialization:   %v\n", initTime)
	fmt.Fprintf(w, "  Conversion:       %v\n", convertTime)
	fmt.Fprintf(w, "  Tiles:            %d\n", hits+misses)
	fmt.Fprintf(w, "  Selection cache:  %d hits, %d misses (%.1f%%)\n", hits, misses, rate*100)
}
