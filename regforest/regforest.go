package regforest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxForestSize caps the total node count declared in the header.
const maxForestSize = 10_000_000

var (
	// ErrBadHeader indicates the first line did not match the RFCSV header.
	ErrBadHeader = errors.New("regforest: malformed RFCSV header")
	// ErrBadShape indicates non-positive tree count, dimension, or length.
	ErrBadShape = errors.New("regforest: tree count, dimension, and length must be positive")
	// ErrTooLarge indicates the declared node count exceeds the size limit.
	ErrTooLarge = errors.New("regforest: forest exceeds maximum size")
	// ErrBadRecord indicates a node record line could not be parsed.
	ErrBadRecord = errors.New("regforest: malformed node record")
	// ErrDimensionMismatch indicates Predict was given a feature vector whose
	// length differs from the forest's feature dimension.
	ErrDimensionMismatch = errors.New("regforest: feature vector does not match forest dimension")
)

// Forest is an immutable ensemble of regression trees stored in flat arrays.
// All trees share one node arena; begin[t] is the arena index of tree t's
// root, and child indices inside a tree are relative to that root.
type Forest struct {
	ntrees   int
	dim      int
	begin    []int
	child    []int // 2*size entries, pairs of (left, right)
	splitIdx []int // feature index per node, -1 at leaves
	value    []float64
}

// NTrees returns the number of trees in the forest.
func (f *Forest) NTrees() int { return f.ntrees }

// Dim returns the feature dimension the forest was trained on.
func (f *Forest) Dim() int { return f.dim }

// Load reads a forest from an RFCSV file on disk.
func Load(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regforest: open %s: %w", path, err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses a forest from RFCSV data. On any error the forest is not
// partially constructed; the caller receives nil.
func Read(r io.Reader) (*Forest, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing header line", ErrBadHeader)
	}

	var ntrees, dim, size int
	n, err := fmt.Sscanf(scanner.Text(), "### NTREES=%d FEATURE_DIM=%d LENGTH=%d", &ntrees, &dim, &size)
	if err != nil || n != 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, scanner.Text())
	}

	if size > maxForestSize {
		return nil, fmt.Errorf("%w: %d nodes requested, limit is %d", ErrTooLarge, size, maxForestSize)
	}
	if ntrees <= 0 || dim <= 0 || size <= 0 {
		return nil, fmt.Errorf("%w: ntrees=%d dim=%d length=%d", ErrBadShape, ntrees, dim, size)
	}

	forest := &Forest{
		ntrees:   ntrees,
		dim:      dim,
		begin:    make([]int, 0, ntrees),
		child:    make([]int, 2*size),
		splitIdx: make([]int, size),
		value:    make([]float64, size),
	}

	pos := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if pos >= size {
			return nil, fmt.Errorf("%w: more than %d records", ErrBadRecord, size)
		}

		var node int
		n, err := fmt.Sscanf(line, "%d,%d,%d,%d,%g",
			&node, &forest.child[2*pos], &forest.child[2*pos+1], &forest.splitIdx[pos], &forest.value[pos])
		if err != nil || n != 5 {
			return nil, fmt.Errorf("%w: record %d %q", ErrBadRecord, pos+1, line)
		}

		// node numbering restarts at zero on each new root
		if node == 0 {
			if len(forest.begin) == ntrees {
				return nil, fmt.Errorf("%w: more than %d tree roots", ErrBadRecord, ntrees)
			}
			forest.begin = append(forest.begin, pos)
		}

		pos++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regforest: read: %w", err)
	}
	if pos != size || len(forest.begin) != ntrees {
		return nil, fmt.Errorf("%w: header declares %d nodes in %d trees, found %d nodes in %d trees",
			ErrBadRecord, size, ntrees, pos, len(forest.begin))
	}

	return forest, nil
}

// Predict evaluates every tree on the feature vector and returns the mean of
// the reached leaf values. Descent goes right when the examined feature
// strictly exceeds the node's split value.
func (f *Forest) Predict(features []float64) (float64, error) {
	if len(features) != f.dim {
		return 0.0, fmt.Errorf("%w: got %d features, want %d", ErrDimensionMismatch, len(features), f.dim)
	}

	sum := 0.0
	for _, root := range f.begin {
		child := f.child[2*root:]
		splitIdx := f.splitIdx[root:]
		value := f.value[root:]

		pos := 0
		for splitIdx[pos] != -1 {
			if features[splitIdx[pos]] > value[pos] {
				pos = child[2*pos+1]
			} else {
				pos = child[2*pos]
			}
		}

		sum += value[pos]
	}

	return sum / float64(f.ntrees), nil
}
