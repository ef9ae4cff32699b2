package shuffle

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/katalvlaran/choreo/chaos"
)

// keyPoint is a mapping key remembering its frame.
type keyPoint struct {
	frame int
	at    chaos.Vector
}

func (p keyPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.at[d] - c.(keyPoint).at[d]
}

func (p keyPoint) Dims() int { return len(p.at) }

// Distance is squared Euclidean, as kdtree expects.
func (p keyPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(keyPoint)
	var sum float64
	for i, v := range p.at {
		d := v - q.at[i]
		sum += d * d
	}
	return sum
}

type keyPoints []keyPoint

func (p keyPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p keyPoints) Len() int                      { return len(p) }
func (p keyPoints) Pivot(d kdtree.Dim) int {
	return keyPlane{keyPoints: p, Dim: d}.Pivot()
}
func (p keyPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// keyPlane sorts keys along one axis.
type keyPlane struct {
	kdtree.Dim
	keyPoints
}

func (p keyPlane) Less(i, j int) bool {
	return p.keyPoints[i].at[p.Dim] < p.keyPoints[j].at[p.Dim]
}
func (p keyPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p keyPlane) Slice(start, end int) kdtree.SortSlicer {
	p.keyPoints = p.keyPoints[start:end]
	return p
}
func (p keyPlane) Swap(i, j int) {
	p.keyPoints[i], p.keyPoints[j] = p.keyPoints[j], p.keyPoints[i]
}
