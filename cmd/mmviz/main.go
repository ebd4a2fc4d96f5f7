// Command mmviz renders tie point figures for every image pair of a MicMac
// project that already holds a Homol tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch"
	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/measure"
	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/render"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Project       string
	Pattern       string
	Parallel      bool
	Workers       int
	LineColor     string
	LineThickness float64
	MaxMatches    int
	MaxImageDim   int
	Coverage      string
	Verbose       bool
}

func main() {
	log.SetFlags(0)

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("mmviz", flag.ContinueOnError)
	fs.StringVar(&flags.Project, "project", ".", "MicMac project directory")
	fs.StringVar(&flags.Pattern, "pattern", "*.tif", "image filename pattern")
	fs.BoolVar(&flags.Parallel, "parallel", false, "render pairs on a worker pool")
	fs.IntVar(&flags.Workers, "workers", 0, "worker pool size (0 = number of CPUs)")
	fs.StringVar(&flags.LineColor, "line-color", "#00cc44", "match line colour")
	fs.Float64Var(&flags.LineThickness, "line-thickness", -1, "match line width in points (<=0 draws tie points only)")
	fs.IntVar(&flags.MaxMatches, "max-matches", 500, "cap on drawn matches per pair (0 = all)")
	fs.IntVar(&flags.MaxImageDim, "max-image-dim", 2000, "downscale images whose long edge exceeds this many pixels (0 = never)")
	fs.StringVar(&flags.Coverage, "coverage", "", "write a DOT coverage graph of the match set to this file")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log completion of every pair")

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project, err := vizmatch.Discover(flags.Project, flags.Pattern)
	if err != nil {
		return err
	}

	lineColor, err := render.ParseColor(flags.LineColor)
	if err != nil {
		return err
	}

	renderer := render.NewPlotRenderer(
		render.LineColor(lineColor),
		render.LineThickness(flags.LineThickness),
		render.MaxMatches(flags.MaxMatches),
		render.MaxImageDim(flags.MaxImageDim),
	)

	msr := measure.NewDefaultMeasure()
	opts := []vizmatch.Option{
		vizmatch.PipelineMeasure(msr),
		vizmatch.Progress(func(event vizmatch.Event) {
			if event.Status == vizmatch.StatusDone && !flags.Verbose {
				return
			}
			log.Println(vizmatch.FormatEvent(event))
		}),
	}
	if flags.Parallel {
		opts = append(opts, vizmatch.Parallel())
	}
	if flags.Workers > 0 {
		opts = append(opts, vizmatch.Workers(flags.Workers))
	}

	pipe, err := vizmatch.New(project, renderer, opts...)
	if err != nil {
		return err
	}
	if err := pipe.Run(ctx); err != nil {
		return err
	}
	log.Printf("rendered %d pairs into %s", len(vizmatch.Combinations(project.Images)), project.FigsDir())

	if flags.Coverage == "" {
		return nil
	}

	drawer := vizmatch.NewCoverageDrawer(flags.Coverage)
	if err := drawer.AddProject(project); err != nil {
		return err
	}
	if err := drawer.AddMeasure(msr); err != nil {
		return err
	}

	return drawer.Draw()
}
