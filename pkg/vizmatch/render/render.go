// Package render implements the default figure renderer of the
// visualization pipeline. A figure shows both images of a pair side by side
// with their tie points drawn on top.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"

	// Satellite imagery comes as TIFF; PNG and JPEG cover everything else.
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	colors "gopkg.in/go-playground/colors.v1" //nolint

	"github.com/stereosat/micmac-pipeline/internal/imgcache"
	"github.com/stereosat/micmac-pipeline/pkg/vizmatch"
)

const (
	// renderDPI sets the pixel density of the saved figure.
	renderDPI = 96
	// gapFraction is the horizontal gap between the two images, relative to
	// the width of the left one.
	gapFraction = 0.02
)

// PlotRenderer renders match figures with gonum/plot. It satisfies
// vizmatch.Renderer and is safe for concurrent use: decoded images are shared
// through an internal cache and every call writes to its own output path.
type PlotRenderer struct {
	cache         *imgcache.Cache
	lineColor     color.Color
	lineThickness float64
	maxMatches    int
	maxDim        int
}

// PlotOption configures a PlotRenderer.
type PlotOption func(r *PlotRenderer)

// LineThickness sets the match line width in points. Values at or below zero
// draw the tie points only, without connecting lines.
func LineThickness(points float64) PlotOption {
	return func(r *PlotRenderer) {
		r.lineThickness = points
	}
}

// LineColor sets the colour used for match lines and tie point glyphs.
func LineColor(c color.Color) PlotOption {
	return func(r *PlotRenderer) {
		if c != nil {
			r.lineColor = c
		}
	}
}

// MaxMatches caps how many matches are drawn per figure. Records routinely
// hold tens of thousands of correspondences; drawing them all produces an
// unreadable figure. Zero draws everything.
func MaxMatches(maxMatches int) PlotOption {
	return func(r *PlotRenderer) {
		if maxMatches >= 0 {
			r.maxMatches = maxMatches
		}
	}
}

// MaxImageDim downscales any source image whose long edge exceeds dim pixels
// before plotting. Zero disables downscaling.
func MaxImageDim(dim int) PlotOption {
	return func(r *PlotRenderer) {
		if dim >= 0 {
			r.maxDim = dim
		}
	}
}

// NewPlotRenderer creates a renderer with a fresh image cache.
func NewPlotRenderer(opts ...PlotOption) *PlotRenderer {
	renderer := &PlotRenderer{
		cache:         imgcache.New(),
		lineColor:     color.NRGBA{G: 0xcc, B: 0x44, A: 0xff},
		lineThickness: 1,
		maxMatches:    500,
		maxDim:        2000,
	}
	for _, opt := range opts {
		opt(renderer)
	}

	return renderer
}

// ParseColor converts a CSS style colour string (hex, rgb(...), hsl(...))
// into a color.Color.
func ParseColor(value string) (color.Color, error) {
	parsed, err := colors.Parse(value)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse colour %q", value)
	}
	rgb := parsed.ToRGB()

	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff}, nil
}

// Render produces the figure for one pair and writes it to req.OutPath,
// replacing any previous figure.
func (r *PlotRenderer) Render(ctx context.Context, req vizmatch.RenderRequest) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "render cancelled")
	default:
	}

	matches, err := ParseHomol(req.MatchPath)
	if err != nil {
		return err
	}

	img0, err := r.cache.GetOrLoad(filepath.Join(req.ProjectDir, req.I0Name), r.loadImage)
	if err != nil {
		return err
	}
	img1, err := r.cache.GetOrLoad(filepath.Join(req.ProjectDir, req.I1Name), r.loadImage)
	if err != nil {
		return err
	}

	fig := plot.New()
	fig.HideAxes()
	fig.Title.Text = figureTitle(req.I0Name, req.I1Name, matches)

	bounds0 := img0.Image.Bounds()
	bounds1 := img1.Image.Bounds()
	w0 := float64(bounds0.Dx())
	h0 := float64(bounds0.Dy())
	w1 := float64(bounds1.Dx())
	h1 := float64(bounds1.Dy())
	offX := w0 + w0*gapFraction

	fig.Add(plotter.NewImage(img0.Image, 0, 0, w0, h0))
	fig.Add(plotter.NewImage(img1.Image, offX, 0, offX+w1, h1))

	for _, match := range subsample(matches, r.maxMatches) {
		// Plot space has the y axis pointing up; pixel space points down.
		pts := plotter.XYs{
			{X: match.X0 * img0.Scale, Y: h0 - match.Y0*img0.Scale},
			{X: offX + match.X1*img1.Scale, Y: h1 - match.Y1*img1.Scale},
		}

		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return errors.Wrapf(err, "unable to build line for pair %s-%s", req.I0Name, req.I1Name)
		}
		scatter.GlyphStyle.Shape = vgdraw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Color = r.lineColor
		if r.lineThickness > 0 {
			line.LineStyle.Width = vg.Points(r.lineThickness)
			line.LineStyle.Color = r.lineColor
			fig.Add(line)
		}
		fig.Add(scatter)
	}

	totalW := offX + w1
	totalH := math.Max(h0, h1)
	width := vg.Points(totalW * vg.Inch.Points() / renderDPI)
	height := vg.Points(totalH * vg.Inch.Points() / renderDPI)

	if err := fig.Save(width, height, req.OutPath); err != nil {
		return errors.Wrapf(err, "unable to save figure %s", req.OutPath)
	}

	return nil
}

// loadImage decodes one source image, downscaling it when its long edge
// exceeds the configured limit.
func (r *PlotRenderer) loadImage(path string) (imgcache.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return imgcache.Entry{}, errors.Wrapf(err, "unable to open image %s", path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return imgcache.Entry{}, errors.Wrapf(err, "unable to decode image %s", path)
	}

	bounds := img.Bounds()
	long := bounds.Dx()
	if bounds.Dy() > long {
		long = bounds.Dy()
	}
	if r.maxDim == 0 || long <= r.maxDim {
		return imgcache.Entry{Image: img, Scale: 1}, nil
	}

	scale := float64(r.maxDim) / float64(long)
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(bounds.Dx())*scale),
		int(float64(bounds.Dy())*scale),
	))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)

	return imgcache.Entry{Image: dst, Scale: scale}, nil
}

// subsample keeps at most maxMatches entries, evenly spread over the record.
func subsample(matches []Match, maxMatches int) []Match {
	if maxMatches <= 0 || len(matches) <= maxMatches {
		return matches
	}

	step := float64(len(matches)) / float64(maxMatches)
	kept := make([]Match, 0, maxMatches)
	for i := 0; i < maxMatches; i++ {
		kept = append(kept, matches[int(float64(i)*step)])
	}

	return kept
}

func figureTitle(i0Name, i1Name string, matches []Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("%s / %s: no matches", i0Name, i1Name)
	}

	offsets := make([]float64, len(matches))
	for i, match := range matches {
		offsets[i] = math.Hypot(match.X1-match.X0, match.Y1-match.Y0)
	}
	mean := stat.Mean(offsets, nil)
	if len(offsets) < 2 {
		return fmt.Sprintf("%s / %s: %d matches, mean offset %.1f px", i0Name, i1Name, len(matches), mean)
	}
	sigma := stat.StdDev(offsets, nil)

	return fmt.Sprintf("%s / %s: %d matches, offset %.1f +/- %.1f px", i0Name, i1Name, len(matches), mean, sigma)
}
