package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "img2ascii",
	Short: "Render images as mosaics of font glyphs",
	Long: `img2ascii cuts an image into font-cell sized tiles and replaces each
tile with the character whose rendered glyph matches it best.

The mosaic can be written as plain text, HTML, ANSI colored text, a raster
image, or, for animated GIF input, an animated GIF.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"img2ascii %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[img2ascii] "+format+"\n", args...)
	}
}
