package vizmatch

// Pair is an unordered combination of two distinct images. I0 always precedes
// I1 in image set order, matching the orientation of the matcher's
// Homol/Pastis<I0>/<I1>.txt layout.
type Pair struct {
	I0 Image
	I1 Image
}

func (p Pair) String() string {
	return p.I0.Name + "-" + p.I1.Name
}

// Combinations enumerates every unordered two element combination of images
// in a canonical, first discovered orientation. For n images it returns
// exactly n*(n-1)/2 pairs, never a self pair and never the same pair twice.
func Combinations(images []Image) []Pair {
	if len(images) < 2 {
		return nil
	}

	pairs := make([]Pair, 0, len(images)*(len(images)-1)/2)
	for i := 0; i < len(images); i++ {
		for j := i + 1; j < len(images); j++ {
			pairs = append(pairs, Pair{I0: images[i], I1: images[j]})
		}
	}

	return pairs
}
