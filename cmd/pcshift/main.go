// Command pcshift estimates the translation between two images by phase
// correlation.
//
// Usage:
//
//	pcshift [flags] -fixed fixed.png -moving moving.png
//
// Both images must have identical pixel dimensions. They are converted to
// grayscale, apodized, and correlated; the estimated shift of the moving
// image relative to the fixed one is printed in samples (row, column) and,
// when -spacing is given, in physical units.
//
// Examples:
//
//	pcshift -fixed a.png -moving b.png
//	pcshift -fixed a.tif -moving b.tif -window tukey -alpha 0.3
//	pcshift -fixed a.png -moving b.png -band 0.5 -workers 4 -refine=false
//	pcshift -config params.yaml -spacing 0.5,0.5 -fixed a.png -moving b.png
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	phasecorr "github.com/cwbudde/algo-phasecorr"
	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/window"
)

func main() {
	fixedPath := flag.String("fixed", "", "fixed (reference) image file")
	movingPath := flag.String("moving", "", "moving image file")
	configPath := flag.String("config", "", "YAML parameter file")
	windowName := flag.String("window", "hann", "apodization window (rectangular, hann, hamming, blackman, tukey, welch)")
	alpha := flag.Float64("alpha", 0.5, "taper parameter for parametric windows")
	band := flag.Float64("band", 1, "centered spectrum fraction to keep, in (0, 1]")
	workers := flag.Int("workers", 0, "worker goroutines (0 = one per CPU)")
	refine := flag.Bool("refine", true, "refine the peak to subsample precision")
	spacingFlag := flag.String("spacing", "", "comma-separated physical sample spacing per axis (row, column)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pcshift [flags] -fixed fixed.png -moving moving.png\n\n")
		fmt.Fprintf(os.Stderr, "Estimates the translation between two images by phase correlation.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pcshift -fixed a.png -moving b.png\n")
		fmt.Fprintf(os.Stderr, "  pcshift -fixed a.tif -moving b.tif -window tukey -alpha 0.3\n")
		fmt.Fprintf(os.Stderr, "  pcshift -fixed a.png -moving b.png -band 0.5 -workers 4\n")
	}
	flag.Parse()

	if *fixedPath == "" || *movingPath == "" {
		fmt.Fprintf(os.Stderr, "error: -fixed and -moving are both required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatalf("%v", err)
	}

	// Command-line flags override file values, but only when given.
	var spacingErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window":
			cfg.Window = *windowName
		case "alpha":
			cfg.WindowAlpha = *alpha
		case "band":
			cfg.Band = *band
		case "workers":
			cfg.Workers = *workers
		case "refine":
			cfg.Refine = *refine
		case "spacing":
			cfg.Spacing, spacingErr = parseSpacing(*spacingFlag)
		}
	})
	if spacingErr != nil {
		fatalf("%v", spacingErr)
	}

	fixed, fixedSize, err := loadGray(*fixedPath)
	if err != nil {
		fatalf("%v", err)
	}
	moving, movingSize, err := loadGray(*movingPath)
	if err != nil {
		fatalf("%v", err)
	}

	shift, err := estimate(cfg, fixed, fixedSize, moving, movingSize)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("fixed:  %s (%s)\n", *fixedPath, sizeString(fixedSize))
	fmt.Printf("moving: %s (%s)\n", *movingPath, sizeString(movingSize))
	fmt.Printf("shift:  [%s] samples (row, column)\n", formatVec(shift.Samples))
	if len(cfg.Spacing) > 0 {
		fmt.Printf("offset: [%s] physical units\n", formatVec(shift.Offset))
	}
	fmt.Printf("peak:   %.4f\n", shift.Peak)
	fmt.Printf("psr:    %.2f\n", shift.PSR)
}

func estimate(cfg fileConfig, fixed []float64, fixedSize []int, moving []float64, movingSize []int) (*phasecorr.Shift, error) {
	wt, err := window.ParseType(cfg.Window)
	if err != nil {
		return nil, err
	}

	spacing := cfg.Spacing
	if len(spacing) == 0 {
		spacing = []float64{1, 1}
	}
	if len(spacing) != len(fixedSize) {
		return nil, fmt.Errorf("spacing needs %d values, got %d", len(fixedSize), len(spacing))
	}
	origin := make([]float64, len(fixedSize))

	fixedImg, err := phasecorr.NewImage(grid.New(origin, spacing, grid.ZeroRegion(fixedSize...)), fixed)
	if err != nil {
		return nil, err
	}
	movingImg, err := phasecorr.NewImage(grid.New(origin, spacing, grid.ZeroRegion(movingSize...)), moving)
	if err != nil {
		return nil, err
	}

	opts := []phasecorr.Option{
		phasecorr.WithWindow(wt),
		phasecorr.WithWindowAlpha(cfg.WindowAlpha),
		phasecorr.WithBand(cfg.Band),
		phasecorr.WithWorkers(cfg.Workers),
	}
	if cfg.Refine {
		opts = append(opts, phasecorr.WithRefinement())
	}
	return phasecorr.EstimateShift(fixedImg, movingImg, opts...)
}

// loadGray decodes an image file and converts it to row-major grayscale
// samples in [0, 1]. The returned size is (rows, columns).
func loadGray(path string) ([]float64, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, nil, fmt.Errorf("%s: empty image", path)
	}

	data := make([]float64, w*h)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// Rec. 601 luma over 16-bit channels.
			data[i] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 65535
			i++
		}
	}
	return data, []int{h, w}, nil
}

func sizeString(size []int) string {
	parts := make([]string, len(size))
	for i, s := range size {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, "x")
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.3f", x)
	}
	return strings.Join(parts, " ")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
