package vizmatch

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	colors "gopkg.in/go-playground/colors.v1" //nolint

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/measure"
)

// CoverageDrawer accumulates the match graph of a project: one vertex per
// image, one edge per pair whose match record exists, labelled with the
// number of matches in the record. The graph is written out as DOT so that
// dot(1) can render it.
type CoverageDrawer struct {
	graph       graph.Graph[string, string]
	edges       map[string][2]string
	dotFileName string
}

// NewCoverageDrawer creates a drawer that writes to dotFileName.
func NewCoverageDrawer(dotFileName string) *CoverageDrawer {
	return &CoverageDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash),
		edges:       make(map[string][2]string),
	}
}

// AddProject records the images of project and every pair that has a match
// record. Pairs without a record simply get no edge; missing coverage shows
// up as disconnected vertices.
func (d *CoverageDrawer) AddProject(project *Project) error {
	for _, img := range project.Images {
		err := d.graph.AddVertex(img.Name)
		if err != nil {
			return errors.Wrapf(err, "unable to add vertex %s", img.Name)
		}
	}

	for _, pair := range Combinations(project.Images) {
		count, err := countMatches(project.MatchRecordPath(pair))
		if err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				continue
			}

			return err
		}

		err = d.graph.AddEdge(pair.I0.Name, pair.I1.Name,
			graph.EdgeAttribute("label", strconv.Itoa(count)),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to add edge from %s to %s", pair.I0.Name, pair.I1.Name)
		}
		d.edges[pair.String()] = [2]string{pair.I0.Name, pair.I1.Name}
	}

	return nil
}

const maxRGB = 240

// AddMeasure colours the pair edges on a blue to red gradient according to
// their average render duration, slowest pair in red.
func (d *CoverageDrawer) AddMeasure(msr measure.Measure) error {
	byPair := make(map[string]time.Duration)
	sortedElapsed := []time.Duration{}

	for name, metric := range msr.AllMetrics() {
		avg := metric.AVGDuration()
		if avg == 0 {
			continue
		}
		if _, ok := d.edges[name]; !ok {
			continue
		}

		byPair[name] = avg
		sortedElapsed = append(sortedElapsed, avg)
	}

	if len(sortedElapsed) == 0 {
		return nil
	}

	sort.Slice(sortedElapsed, func(i, j int) bool {
		return sortedElapsed[i] > sortedElapsed[j]
	})

	maxValue := sortedElapsed[0]
	minValue := sortedElapsed[len(sortedElapsed)-1]

	for name, avg := range byPair {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		edgeColor, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		ends := d.edges[name]
		err = d.graph.UpdateEdge(ends[0], ends[1],
			graph.EdgeAttribute("label", avg.String()),
			graph.EdgeAttribute("fontcolor", "blue"),
			graph.EdgeAttribute("color", edgeColor.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update edge from %s to %s", ends[0], ends[1])
		}
	}

	return nil
}

// Draw creates the DOT file with the coverage graph.
func (d *CoverageDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

// countMatches returns the number of non blank lines of a match record.
func countMatches(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to open match record %s", path)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(err, "unable to read match record %s", path)
	}

	return count, nil
}
