package genome

import "sort"

// geneIndex provides O(log n + k) point queries over gene spans using a
// sorted-slice approach. Genes are indexed once at assembly and never
// modified after build.
type geneIndex struct {
	intervals []geneInterval
	maxEnd    []int // maxEnd[i] = max(end) for intervals[:i+1]
}

type geneInterval struct {
	start int
	end   int
	gene  *Gene
}

// buildGeneIndex creates an index from the gene list.
func buildGeneIndex(genes []*Gene) *geneIndex {
	if len(genes) == 0 {
		return &geneIndex{}
	}

	intervals := make([]geneInterval, len(genes))
	for i, g := range genes {
		intervals[i] = geneInterval{start: g.Start, end: g.End, gene: g}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	// Prefix-max array: maxEnd[i] covers intervals[:i+1], so the backward
	// scan can stop as soon as no earlier interval reaches the position.
	maxEnd := make([]int, len(intervals))
	maxEnd[0] = intervals[0].end
	for i := 1; i < len(intervals); i++ {
		maxEnd[i] = intervals[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &geneIndex{intervals: intervals, maxEnd: maxEnd}
}

// overlapping returns the genes whose half-open [start, end) span contains
// pos, ordered by start.
func (x *geneIndex) overlapping(pos int) []*Gene {
	if len(x.intervals) == 0 {
		return nil
	}

	// Binary search: candidates must have start <= pos, so only the
	// prefix up to the first interval with start > pos needs scanning.
	hi := sort.Search(len(x.intervals), func(i int) bool {
		return x.intervals[i].start > pos
	})

	var result []*Gene
	for i := hi - 1; i >= 0; i-- {
		if x.maxEnd[i] <= pos {
			break
		}
		if x.intervals[i].end > pos {
			result = append(result, x.intervals[i].gene)
		}
	}

	// The scan runs backward; restore start order.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
