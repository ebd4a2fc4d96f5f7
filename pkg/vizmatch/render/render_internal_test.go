package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubsample(t *testing.T) {
	matches := make([]Match, 100)
	for i := range matches {
		matches[i] = Match{X0: float64(i)}
	}

	kept := subsample(matches, 10)
	assert.Len(t, kept, 10)
	assert.Equal(t, float64(0), kept[0].X0)
	assert.Equal(t, float64(90), kept[9].X0)

	// No cap or small input: the record is returned untouched.
	assert.Len(t, subsample(matches, 0), 100)
	assert.Len(t, subsample(matches[:5], 10), 5)
}

func TestFigureTitle(t *testing.T) {
	assert.Equal(t, "a.tif / b.tif: no matches", figureTitle("a.tif", "b.tif", nil))

	one := []Match{{X0: 0, Y0: 0, X1: 3, Y1: 4}}
	assert.Equal(t, "a.tif / b.tif: 1 matches, mean offset 5.0 px", figureTitle("a.tif", "b.tif", one))

	two := append(one, Match{X0: 0, Y0: 0, X1: 3, Y1: 4})
	assert.Equal(t, "a.tif / b.tif: 2 matches, offset 5.0 +/- 0.0 px", figureTitle("a.tif", "b.tif", two))
}
