// Command styleatlas renders font style previews into a PNG atlas.
//
// Usage:
//
//	styleatlas [flags] text...
//
// Each text argument becomes one preview, packed top to bottom. Defaults
// for -font, -dpi and -max-width can be set with STYLEATLAS_FONT,
// STYLEATLAS_DPI and STYLEATLAS_MAX_WIDTH, or in a .env.local or .env file
// in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/styleatlas"
	"github.com/gogpu/styleatlas/text"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	loaded, err := loadEnv(".")
	if err != nil {
		return fmt.Errorf("styleatlas: load env: %w", err)
	}
	def, err := envDefaults()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("styleatlas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fontPath = fs.String("font", def.font, "font file (TTF/OTF); Go Regular when empty")
		dpi      = fs.Float64("dpi", def.dpi, "display dots per inch")
		maxWidth = fs.Int("max-width", def.maxWidth, "maximum preview width in pixels")
		sizeMM   = fs.Float64("size", 8, "font size in millimetres")
		gamma    = fs.Float64("gamma", 1, "coverage gamma")
		skew     = fs.Float64("skew", 0, "horizontal shear, 0.2 looks italic")
		out      = fs.String("out", "atlas.png", "output PNG file")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: styleatlas [flags] text...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("styleatlas: no texts given")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	styleatlas.SetLogger(log)
	defer styleatlas.SetLogger(nil)

	for _, path := range loaded {
		log.Debug("loaded env file", "path", path)
	}

	font, err := openFont(*fontPath)
	if err != nil {
		return err
	}
	defer font.Close()

	builder, err := styleatlas.NewBuilder(
		styleatlas.WithDPI(*dpi),
		styleatlas.WithMaxWidth(*maxWidth),
		styleatlas.WithGamma(*gamma),
	)
	if err != nil {
		return err
	}
	defer builder.Close()

	styles := make([]styleatlas.Style, fs.NArg())
	for i, s := range fs.Args() {
		styles[i] = styleatlas.Style{
			Name:  s,
			Font:  font,
			Props: styleatlas.FontProps{SizeMM: *sizeMM, Skew: *skew},
		}
	}

	manager := styleatlas.NewStyleManager()
	defer manager.Close()

	job, err := styleatlas.NewStyleImagesJob(builder, styleatlas.StyleImagesData{
		Styles: styles,
		Result: manager,
	})
	if err != nil {
		return err
	}
	if err := styleatlas.Run(ctx, job); err != nil {
		return err
	}

	for i, img := range manager.Images() {
		log.Info("tile",
			"index", i,
			"text", img.Style.Name,
			"x", img.Offset.X, "y", img.Offset.Y,
			"width", img.TexSize.Width, "height", img.TexSize.Height,
			"uv0", fmt.Sprintf("%.4f,%.4f", img.UV0.U, img.UV0.V),
			"uv1", fmt.Sprintf("%.4f,%.4f", img.UV1.U, img.UV1.V))
	}

	if err := writePNG(*out, manager); err != nil {
		return err
	}
	images := job.Images()
	log.Info("atlas written", "path", *out, "width", images.Width, "height", images.Height)
	return nil
}

func openFont(path string) (*text.FontSource, error) {
	if path == "" {
		return text.NewFontSource(goregular.TTF)
	}
	return text.NewFontSourceFromFile(path)
}

func writePNG(path string, m *styleatlas.StyleManager) error {
	pixels := m.Atlas()
	if pixels == nil || pixels.Bounds().Empty() {
		return errors.New("styleatlas: atlas is empty, nothing to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("styleatlas: create output: %w", err)
	}
	if err := png.Encode(f, pixels); err != nil {
		_ = f.Close()
		return fmt.Errorf("styleatlas: encode png: %w", err)
	}
	return f.Close()
}
