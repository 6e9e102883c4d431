package matchbench

import (
	"context"

	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

type (
	// Tree is a schema tree as loaded by the matcher's own model code.
	Tree = any
	// Categories is the matcher's category model.
	Categories = any
	// Similarity is the matcher's similarity structure. It is passed back to
	// the matcher untouched.
	Similarity = any
)

// Grid is the Cartesian product of leaf structural weights and acceptance
// thresholds a sweep covers.
type Grid = bench.Grid

// Metrics holds the scores of one run.
type Metrics = bench.Metrics

// Params are the thresholds and weights of one matcher invocation.
type Params struct {
	Accept        float64 // th_accept
	Low           float64 // th_low
	High          float64 // th_high
	LeafStruct    float64 // leaf_w_struct
	Struct        float64 // w_struct
	NameThreshold float64 // th_ns
}

// Matcher is the tree matching algorithm under evaluation.
type Matcher interface {
	// Match computes the similarity structure of two schema trees.
	Match(ctx context.Context, source, target Tree, categories Categories, p Params) (Similarity, error)

	// LeafMappings derives leaf level correspondences from a similarity
	// structure.
	LeafMappings(ctx context.Context, source, target Tree, sim Similarity, accept float64) (mapping.Set, error)
}

// NonLeafMatcher is implemented by matchers that can also map non-leaf
// elements. It is only used when WithNonLeaf is set.
type NonLeafMatcher interface {
	RecomputeSimilarity(ctx context.Context, source, target Tree, sim Similarity, accept float64) (Similarity, error)
	NonLeafMappings(ctx context.Context, source, target Tree, sim Similarity, accept float64) (mapping.Set, error)
}
