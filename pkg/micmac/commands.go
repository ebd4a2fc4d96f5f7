package micmac

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrInvalidTieMethod = errors.New("invalid method, must be one of: MulScale, All, Line, File, Graph")
	ErrInvalidMaltMode  = errors.New("invalid mode, must be one of: Ortho, GeomImage, UrbanMNE")
)

// TieMethod selects the Tapioca pair selection strategy.
type TieMethod string

const (
	TieMulScale TieMethod = "MulScale"
	TieAll      TieMethod = "All"
	TieLine     TieMethod = "Line"
	TieFile     TieMethod = "File"
	TieGraph    TieMethod = "Graph"
)

// imagePattern builds the quoted regex pattern mm3d expects for an image
// series, e.g. `IMG(.*).tif`.
func imagePattern(prefix, ext string) string {
	return fmt.Sprintf("%s(.*).%s", prefix, ext)
}

func boolFlag(flag bool) string {
	if flag {
		return "1"
	}

	return "0"
}

// Tapioca computes tie points for every image matching prefix and extension.
type Tapioca struct {
	Method TieMethod // defaults to All
	Prefix string
	Ext    string // image extension without the dot, e.g. "tif"
	// Resize is the long edge in pixels images are downsampled to before
	// matching. Zero or negative keeps full resolution.
	Resize    int
	ExportTxt bool
}

func (c Tapioca) Validate() error {
	switch c.method() {
	case TieMulScale, TieAll, TieLine, TieFile, TieGraph:
		return nil
	}

	return errors.Wrapf(ErrInvalidTieMethod, "%q", c.Method)
}

func (c Tapioca) method() TieMethod {
	if c.Method == "" {
		return TieAll
	}

	return c.Method
}

func (c Tapioca) Args() []string {
	resize := c.Resize
	if resize <= 0 {
		resize = -1
	}

	return []string{
		"Tapioca", string(c.method()), imagePattern(c.Prefix, c.Ext),
		strconv.Itoa(resize), "ExpTxt=" + boolFlag(c.ExportTxt),
	}
}

// Schnaps filters the tie point set and moves images with too few matches
// aside.
type Schnaps struct {
	Ext string
}

func (c Schnaps) Args() []string {
	return []string{"Schnaps", ".*" + c.Ext, "MoveBadImgs", "1"}
}

// Convert2GenBundle converts per image RPC metadata into MicMac's generic
// bundle orientation, ready for adjustment.
type Convert2GenBundle struct {
	Prefix   string
	Ext      string
	RPCExt   string // extension of the per image RPC files, e.g. "xml"
	Degree   int
	ProjFile string // SysPROJ.xml path passed as ChSys
}

func (c Convert2GenBundle) Args() []string {
	return []string{
		"Convert2GenBundle", imagePattern(c.Prefix, c.Ext), "$1." + c.RPCExt,
		c.OriDir(), "Degre=" + strconv.Itoa(c.Degree), "ChSys=" + c.ProjFile,
	}
}

// OriDir returns the orientation directory the conversion writes.
func (c Convert2GenBundle) OriDir() string {
	return fmt.Sprintf("RPC-d%d", c.Degree)
}

// Campari runs bundle adjustment over the converted RPC orientation.
type Campari struct {
	Prefix    string
	Ext       string
	Degree    int
	ExportTxt bool
}

func (c Campari) Args() []string {
	return []string{
		"Campari", imagePattern(c.Prefix, c.Ext),
		fmt.Sprintf("RPC-d%d", c.Degree), c.OriDir(),
		"ExpTxt=" + boolFlag(c.ExportTxt),
	}
}

// OriDir returns the adjusted orientation directory.
func (c Campari) OriDir() string {
	return fmt.Sprintf("RPC-d%d-adj", c.Degree)
}

// MaltMode selects the dense correlation geometry.
type MaltMode string

const (
	MaltOrtho     MaltMode = "Ortho"
	MaltGeomImage MaltMode = "GeomImage"
	MaltUrbanMNE  MaltMode = "UrbanMNE"
)

// Malt runs the dense correlation. Extra carries free form tool switches
// appended verbatim; use DenseDEM for the canonical DEM plus orthophoto
// setup.
type Malt struct {
	Mode    MaltMode
	Pattern string
	OriDir  string
	Extra   []string
}

func (c Malt) Validate() error {
	switch c.Mode {
	case MaltOrtho, MaltGeomImage, MaltUrbanMNE:
		return nil
	}

	return errors.Wrapf(ErrInvalidMaltMode, "%q", c.Mode)
}

func (c Malt) Args() []string {
	args := []string{"Malt", string(c.Mode), c.Pattern, c.OriDir}

	return append(args, c.Extra...)
}

// DenseDEM is the Malt invocation used for spaceborne DEM extraction with
// orthophoto generation enabled.
func DenseDEM(pattern, oriDir string) Malt {
	return Malt{
		Mode:    MaltOrtho,
		Pattern: pattern,
		OriDir:  oriDir,
		Extra: []string{
			"EXA=1", "ZoomI=4", "ZoomF=2", "VSND=-9999", "DefCor=0",
			"Spatial=1", "MaxFlow=1", "DoOrtho=1", "NbVI=2",
		},
	}
}

// Tawny merges the per image orthophotos into a single mosaic.
type Tawny struct {
	OrthoDir   string // defaults to Ortho-MEC-Malt
	RadiomEgal bool
}

func (c Tawny) Args() []string {
	dir := c.OrthoDir
	if dir == "" {
		dir = "Ortho-MEC-Malt"
	}

	return []string{"Tawny", dir, "RadiomEgal=" + boolFlag(c.RadiomEgal)}
}

// NuageBascule reprojects a depth map into the geometry of another one.
type NuageBascule struct {
	Src string
	Dst string
	Out string
}

func (c NuageBascule) Args() []string {
	return []string{"NuageBascule", c.Src, c.Dst, c.Out}
}

// SMDM fuses several depth maps into one surface model.
type SMDM struct {
	Pattern string
}

func (c SMDM) Args() []string {
	return []string{"SMDM", c.Pattern}
}

// Nuage2Ply converts a depth map into a point cloud.
type Nuage2Ply struct {
	XML string
	Out string
}

func (c Nuage2Ply) Args() []string {
	return []string{"Nuage2Ply", c.XML, "Out=" + c.Out}
}
