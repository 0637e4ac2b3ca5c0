package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/paleta/internal/colour"
	"github.com/jmylchreest/paleta/internal/config"
	"github.com/jmylchreest/paleta/internal/extraction"
	"github.com/jmylchreest/paleta/internal/image"
	httputil "github.com/jmylchreest/paleta/internal/util/http"
	"github.com/jmylchreest/paleta/internal/util/imagecache"
)

// extractOptions holds the extract command's flags.
type extractOptions struct {
	colours   int
	accuracy  *accuracyValue
	algorithm string
	format    string
	save      string
	tolerance float64
	noCache   bool
	preview   bool
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{accuracy: newAccuracyValue(colour.DefaultAccuracy)}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a palette of dominant colours from an image file or HTTP(S) URL.

Colours are ordered by how much of the image they represent, largest first.
Accuracy trades speed for precision by sampling every pixel (high), every
third pixel (medium) or every tenth pixel (low).

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 5 colours (default) from an image
  paleta extract wallpaper.jpg

  # Extract 8 colours at high accuracy with terminal swatches
  paleta extract -c 8 -a high --preview wallpaper.png

  # Output JSON and save the palette to a file
  paleta extract -f json --save palette.json wallpaper.jpg

  # Merge colours that are nearly indistinguishable
  paleta extract --tolerance 5 https://example.com/wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", extraction.DefaultColorCount,
		fmt.Sprintf("number of colours to extract (%d-%d)", extraction.MinColorCount, extraction.MaxColorCount))
	cmd.Flags().VarP(opts.accuracy, "accuracy", "a", "sampling accuracy (high, medium, low)")
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", string(colour.DefaultAlgorithm),
		fmt.Sprintf("extraction algorithm %v", colour.ValidAlgorithms()))
	cmd.Flags().StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json, table)")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the palette to a file (.json for JSON, hex otherwise)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "merge colours closer than this CIE76 distance")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not cache remote images on disk")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches (terminal only)")

	return cmd
}

// applyFlags layers explicitly set flags over the file and env settings.
func (o *extractOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("colours") {
		cfg.Colours = o.colours
	}
	if flags.Changed("accuracy") {
		cfg.Accuracy = o.accuracy.String()
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = o.algorithm
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = o.tolerance
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !o.noCache
	}
}

func runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stderr := cmd.ErrOrStderr()
	logger := newLogger(cmd, stderr)

	cfg, err := readConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts.applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	params, err := cfg.Parameters()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	var cache *imagecache.CacheOptions
	if cfg.Cache.Enabled {
		cache = &imagecache.CacheOptions{CacheDir: cfg.Cache.Dir}
	}
	loader := image.NewSmartLoader(cache, httputil.FetchOptions{
		Timeout:      cfg.Timeout,
		AllowPrivate: cfg.AllowPrivateHosts,
	})

	logger.Debug("loading image", "path", path)
	img, err := loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	pixels, hasAlpha := image.Pixels(img)
	logger.Debug("image loaded", "width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "alpha", hasAlpha)

	extractor, err := colour.NewExtractor(colour.Algorithm(cfg.Algorithm))
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	loop := extraction.NewLoop()
	notifier := &stderrNotifier{w: stderr}
	var saver *fileSaver
	builder := extraction.NewBuilder(extractor).
		WithDispatcher(loop).
		WithNotifier(notifier).
		WithLogger(logger.Named("extraction")).
		WithTolerance(cfg.Tolerance)
	if opts.save != "" {
		saver = &fileSaver{path: opts.save, logger: logger}
		builder = builder.WithSaver(saver)
	}
	orch := builder.Build()

	var runErr error
	unsubscribe := orch.Subscribe(func(e extraction.Event) {
		if e.Kind == extraction.EventExtractionFailed {
			runErr = e.Err
		}
	})
	defer unsubscribe()

	orch.SetImage(&extraction.SourceImage{Pixels: pixels, HasAlpha: hasAlpha})

	quiet, _ := cmd.Flags().GetBool("quiet")
	var busy *busyIndicator
	if !quiet {
		busy = startBusy(stderr, "extracting colours")
	}

	err = orch.SetParameters(params)
	if err == nil {
		err = loop.RunUntil(ctx, func() bool { return orch.State() == extraction.StateIdle })
	}
	busy.Stop()
	if err != nil {
		return notifier.report(err)
	}
	if runErr != nil {
		return notifier.report(runErr)
	}

	palette := colour.NewPalette(orch.Results())
	out, err := formatPalette(palette, cfg.Format, opts.preview && isTerminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if saver == nil {
		return nil
	}
	if err := orch.SavePalette(); err != nil {
		return notifier.report(err)
	}
	if saver.err != nil {
		return saver.err
	}
	return loop.RunUntil(ctx, orch.Saved)
}
