// Command mmsat drives the MicMac satellite workflow over a project of
// pushbroom images with RPC metadata: tie points, RPC conversion, bundle
// adjustment and, optionally, dense correlation into a DEM with an
// orthophoto mosaic.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/stereosat/micmac-pipeline/pkg/micmac"
)

// CLI flags parsed from command line.
type cliFlags struct {
	BinDir    string
	Proj      string
	Prefix    string
	Ext       string
	RPCExt    string
	Degree    int
	Resize    int
	ExportTxt bool
	Schnaps   bool
	Dense     bool
	Verbose   bool
}

type debugLogger struct {
	enabled bool
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	if l.enabled {
		log.Printf(format, args...)
	}
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

	fs := flag.NewFlagSet("mmsat", flag.ContinueOnError)
	fs.StringVar(&flags.BinDir, "mm3d-bin", "/opt/micmac/bin", "directory holding the mm3d binary")
	fs.StringVar(&flags.Proj, "proj", "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs", "ground projection as a PROJ.4 string")
	fs.StringVar(&flags.Prefix, "prefix", "IMG", "image filename prefix")
	fs.StringVar(&flags.Ext, "ext", "tif", "image extension")
	fs.StringVar(&flags.RPCExt, "rpc-ext", "xml", "RPC metadata extension")
	fs.IntVar(&flags.Degree, "degree", 3, "RPC polynomial correction degree")
	fs.IntVar(&flags.Resize, "resize", 5000, "long edge for tie point extraction (-1 = full resolution)")
	fs.BoolVar(&flags.ExportTxt, "exptxt", true, "export tie points as text")
	fs.BoolVar(&flags.Schnaps, "schnaps", false, "filter tie points with Schnaps")
	fs.BoolVar(&flags.Dense, "dense", false, "run dense correlation and orthophoto fusion")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log every mm3d invocation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tool, err := micmac.New(ctx, flags.BinDir, micmac.ToolLogger(debugLogger{enabled: flags.Verbose}))
	if err != nil {
		return err
	}

	log.Printf("creating projection file for %q", flags.Proj)
	if err := micmac.WriteSysProj(flags.Proj, "SysPROJ.xml"); err != nil {
		return err
	}

	log.Println("computing tie points...")
	if _, err := tool.Run(ctx, micmac.Tapioca{
		Prefix:    flags.Prefix,
		Ext:       flags.Ext,
		Resize:    flags.Resize,
		ExportTxt: flags.ExportTxt,
	}); err != nil {
		return err
	}
	if flags.Schnaps {
		if _, err := tool.Run(ctx, micmac.Schnaps{Ext: flags.Ext}); err != nil {
			return err
		}
	}
	log.Println("tie points computed")

	log.Println("converting RPC information...")
	convert := micmac.Convert2GenBundle{
		Prefix:   flags.Prefix,
		Ext:      flags.Ext,
		RPCExt:   flags.RPCExt,
		Degree:   flags.Degree,
		ProjFile: "SysPROJ.xml",
	}
	if _, err := tool.Run(ctx, convert); err != nil {
		return err
	}
	log.Printf("RPC information converted, output directory: %s", convert.OriDir())

	log.Println("performing bundle adjustment...")
	campari := micmac.Campari{
		Prefix:    flags.Prefix,
		Ext:       flags.Ext,
		Degree:    flags.Degree,
		ExportTxt: flags.ExportTxt,
	}
	if _, err := tool.Run(ctx, campari); err != nil {
		return err
	}
	log.Printf("bundle adjustment completed, output directory: %s", campari.OriDir())

	if !flags.Dense {
		log.Println("done")

		return nil
	}

	log.Println("running dense correlation...")
	dense := micmac.DenseDEM(fmt.Sprintf("(.*).%s", flags.Ext), "Ori-"+campari.OriDir())
	if _, err := tool.Run(ctx, dense); err != nil {
		return err
	}
	log.Println("merging orthophotos...")
	if _, err := tool.Run(ctx, micmac.Tawny{}); err != nil {
		return err
	}
	log.Println("done")

	return nil
}
