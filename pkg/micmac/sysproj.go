package micmac

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
)

var ErrProjMustBeSet = errors.New("projection string must be set")

type systemeCoord struct {
	XMLName xml.Name `xml:"SystemeCoord"`
	BSC     bsc      `xml:"BSC"`
}

type bsc struct {
	TypeCoord string `xml:"TypeCoord"`
	AuxStr    string `xml:"AuxStr"`
}

// WriteSysProj writes the SystemeCoord file mm3d expects for ChSys, carrying
// proj as a PROJ.4 definition under the eTC_Proj4 coordinate type. Any file
// already present at fname is replaced.
func WriteSysProj(proj, fname string) error {
	if proj == "" {
		return ErrProjMustBeSet
	}
	if fname == "" {
		fname = "SysPROJ.xml"
	}

	if _, err := os.Stat(fname); err == nil {
		if err := os.Remove(fname); err != nil {
			return errors.Wrapf(err, "unable to remove %s", fname)
		}
	}

	doc := systemeCoord{BSC: bsc{TypeCoord: "eTC_Proj4", AuxStr: proj}}
	body, err := xml.MarshalIndent(doc, "", "     ")
	if err != nil {
		return errors.Wrap(err, "unable to marshal SystemeCoord")
	}

	content := append([]byte(xml.Header), body...)
	content = append(content, '\n')
	if err := os.WriteFile(fname, content, 0o644); err != nil {
		return errors.Wrapf(err, "unable to write %s", fname)
	}

	return nil
}
