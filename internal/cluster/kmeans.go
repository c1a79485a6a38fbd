// Package cluster groups entries into topic clusters by content similarity.
// Clusters are ephemeral: they are recomputed from scratch for every request
// and carry no state between calls.
package cluster

import (
	"math"
	"math/rand"
	"sort"

	"github.com/starford/laguz/internal/analyzer"
)

const (
	// maxVocabulary bounds the term space used for vectorization.
	maxVocabulary = 1000

	// randomSeed fixes centroid initialization so that identical input
	// batches always produce identical assignments.
	randomSeed = 42

	maxIterations = 100
)

// Assign partitions texts into min(k, len(texts)) clusters and returns one
// cluster id per text, aligned with the input. Fewer texts than k, or a
// degenerate vocabulary, collapses everything into cluster 0. The result is
// deterministic for a given input batch and k.
func Assign(texts []string, k int) []int {
	n := len(texts)
	assignments := make([]int, n)
	if n == 0 {
		return assignments
	}
	if n < k || k <= 1 {
		return assignments
	}

	vectors, ok := vectorize(texts)
	if !ok {
		return assignments
	}

	if k > n {
		k = n
	}
	return kmeans(vectors, k)
}

// vectorize builds L2-normalized term-frequency vectors over a bounded
// vocabulary with stop words removed. It reports false when no usable terms
// exist in the batch.
func vectorize(texts []string) ([][]float64, bool) {
	docs := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		docs[i] = analyzer.ContentTokens(text)
		seen := make(map[string]struct{})
		for _, tok := range docs[i] {
			if _, dup := seen[tok]; !dup {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return nil, false
	}

	// Vocabulary ordered by document frequency, then term, so index
	// assignment is stable across runs.
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	vectors := make([][]float64, len(docs))
	nonZero := false
	for i, tokens := range docs {
		vec := make([]float64, len(terms))
		for _, tok := range tokens {
			if j, ok := index[tok]; ok {
				vec[j]++
			}
		}
		if normalize(vec) {
			nonZero = true
		}
		vectors[i] = vec
	}
	return vectors, nonZero
}

// normalize scales vec to unit length in place; it reports false for the
// zero vector, which is left untouched.
func normalize(vec []float64) bool {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return false
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return true
}

// kmeans runs Lloyd's algorithm with seeded initialization. Empty clusters
// are repaired by stealing the point farthest from its centroid, which keeps
// every requested cluster populated.
func kmeans(vectors [][]float64, k int) []int {
	n := len(vectors)
	dim := len(vectors[0])
	rng := rand.New(rand.NewSource(randomSeed))

	centroids := make([][]float64, k)
	for i, p := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), vectors[p]...)
	}

	assignments := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, vec := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				if d := sqDist(vec, centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			c := assignments[i]
			counts[c]++
			for j, v := range vec {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Re-seed the empty cluster with the worst-fitting point.
				far := farthestPoint(vectors, centroids, assignments)
				assignments[far] = c
				copy(centroids[c], vectors[far])
				changed = true
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
		if !changed {
			break
		}
	}
	return assignments
}

func farthestPoint(vectors, centroids [][]float64, assignments []int) int {
	far, farDist := 0, -1.0
	for i, vec := range vectors {
		if d := sqDist(vec, centroids[assignments[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
