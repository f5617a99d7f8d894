package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// blockChars are the block element characters added by --blocks.
const blockChars = "▀▁▂▃▄▅▆▇█▌▍▎▏▐░▒▓▔▕▖▗▘▙▚▛▜▝▞▟"

// sheetColumns is the number of glyphs per row in a contact sheet.
const sheetColumns = 16

var (
	glyphsAlphabet string
	glyphsFont     string
	glyphsFontSize float64
	glyphsBlocks   bool
	glyphsCacheDir string
	glyphsSheet    string
)

var glyphsCmd = &cobra.Command{
	Use:   "glyphs",
	Short: "Render an alphabet and store it in the alphabet cache",
	Long: `Renders every character of the alphabet in the chosen font and stores
the bitmaps in --cache-dir, so later conversions with the same font,
size and alphabet skip rendering.

With --sheet the rendered glyphs are also written as a contact sheet
image for inspection.`,
	Args: cobra.NoArgs,
	RunE: runGlyphs,
}

func init() {
	def := img2ascii.DefaultConfig()
	f := glyphsCmd.Flags()
	f.StringVarP(&glyphsAlphabet, "alphabet", "a", def.Alphabet, "characters to render")
	f.StringVar(&glyphsFont, "font", "", "path to a .ttf, .otf or .ttc font (default Go Mono)")
	f.Float64VarP(&glyphsFontSize, "font-size", "s", def.Font.Size, "font size in pixels")
	f.BoolVar(&glyphsBlocks, "blocks", false, "add the Unicode block element characters")
	f.StringVar(&glyphsCacheDir, "cache-dir", "", "directory for rendered alphabets")
	f.StringVar(&glyphsSheet, "sheet", "", "write a contact sheet image of the glyphs")
	rootCmd.AddCommand(glyphsCmd)
}

func runGlyphs(cmd *cobra.Command, _ []string) error {
	if glyphsCacheDir == "" && glyphsSheet == "" {
		return fmt.Errorf("nothing to do: set --cache-dir or --sheet")
	}
	start := time.Now()

	cfg := img2ascii.DefaultConfig()
	cfg.Alphabet = glyphsAlphabet
	if glyphsBlocks {
		cfg.Alphabet += blockChars
	}
	cfg.FontPath = glyphsFont
	cfg.Font.Size = glyphsFontSize
	if glyphsFont != "" {
		cfg.Font.Family = ""
	}
	cfg.CacheDir = glyphsCacheDir
	if err := cfg.Validate(); err != nil {
		return err
	}

	logVerbose("rendering %d characters", len([]rune(cfg.Alphabet)))
	alphabet, err := cfg.BuildAlphabet()
	if err != nil {
		return fmt.Errorf("build alphabet: %w", err)
	}

	out := cmd.OutOrStdout()
	cell := alphabet.CellSize()
	fmt.Fprintf(out, "  Font:             %s %gpx\n", alphabet.Font().Family, alphabet.Font().Size)
	fmt.Fprintf(out, "  Glyphs:           %d\n", alphabet.Len())
	fmt.Fprintf(out, "  Cell:             %dx%d\n", cell.X, cell.Y)
	if glyphsCacheDir != "" {
		fmt.Fprintf(out, "  Cache:            %s\n", glyphsCacheDir)
	}

	if glyphsSheet != "" {
		if err := imageutil.SaveImage(contactSheet(alphabet), glyphsSheet); err != nil {
			return fmt.Errorf("write %s: %w", glyphsSheet, err)
		}
		fmt.Fprintf(out, "  Sheet:            %s\n", glyphsSheet)
	}
	fmt.Fprintf(out, "  Time:             %v\n", time.Since(start))
	return nil
}

// contactSheet lays the glyph bitmaps out in rows of sheetColumns.
func contactSheet(a *img2ascii.Alphabet) *imageutil.PixelBuffer {
	cell := a.CellSize()
	glyphs := a.Glyphs()
	rows := (len(glyphs) + sheetColumns - 1) / sheetColumns
	cols := min(len(glyphs), sheetColumns)
	sheet := imageutil.NewPixelBuffer(cols*cell.X, rows*cell.Y)
	for i, g := range glyphs {
		ox, oy := i%sheetColumns*cell.X, i/sheetColumns*cell.Y
		for y := 0; y < cell.Y; y++ {
			for x := 0; x < cell.X; x++ {
				sheet.SetColor(ox+x, oy+y, g.Stats.PixelAt(x, y))
			}
		}
	}
	return sheet
}
