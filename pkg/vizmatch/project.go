package vizmatch

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	homolDirName = "Homol"
	figsDirName  = "match_figs"
	pastisPrefix = "Pastis"
)

// Image is one entry of the ordered image set of a project.
type Image struct {
	Path string
	Name string
}

// Project is a MicMac project directory together with its discovered image
// set.
type Project struct {
	Dir    string
	Images []Image
}

// Discover validates projectDir and returns the image set matching pattern,
// ordered lexicographically by filename. The order is deterministic across
// runs so that pair orientation always matches the naming convention the
// matcher used when it wrote the Homol tree.
//
// Both the project directory and its Homol subdirectory must exist; they are
// checked once, before any pair work starts.
func Discover(projectDir, pattern string) (*Project, error) {
	if _, err := os.Stat(projectDir); err != nil {
		return nil, errors.Wrapf(ErrProjectDirNotFound, "project path %s", projectDir)
	}

	homolDir := filepath.Join(projectDir, homolDirName)
	if _, err := os.Stat(homolDir); err != nil {
		return nil, errors.Wrapf(ErrHomolDirNotFound, "homol path %s", homolDir)
	}

	paths, err := filepath.Glob(filepath.Join(projectDir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to expand pattern %s", pattern)
	}

	sort.Strings(paths)

	images := make([]Image, 0, len(paths))
	for _, path := range paths {
		images = append(images, Image{Path: path, Name: filepath.Base(path)})
	}

	return &Project{Dir: projectDir, Images: images}, nil
}

// MatchRecordPath returns the location of the tie point file the matcher
// produced for pair.
func (p *Project) MatchRecordPath(pair Pair) string {
	return filepath.Join(p.Dir, homolDirName, pastisPrefix+pair.I0.Name, pair.I1.Name+".txt")
}

// ArtifactPath returns the location of the figure rendered for pair.
func (p *Project) ArtifactPath(pair Pair) string {
	return filepath.Join(p.FigsDir(), "matches_"+pair.I0.Name+"-"+pair.I1.Name+".png")
}

// FigsDir returns the output directory for rendered figures.
func (p *Project) FigsDir() string {
	return filepath.Join(p.Dir, figsDirName)
}
