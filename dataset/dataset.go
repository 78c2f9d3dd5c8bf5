package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors for dataset loading.
var (
	// ErrMissingLabel indicates the requested label column is not in the header.
	ErrMissingLabel = errors.New("dataset: label column not found")

	// ErrNoRows indicates the file contains a header but no data rows.
	ErrNoRows = errors.New("dataset: no data rows")

	// ErrBadValue indicates a cell that failed numeric parsing.
	ErrBadValue = errors.New("dataset: non-numeric cell")
)

// DefaultLabelColumn is the conventional name of the anomaly label column.
const DefaultLabelColumn = "label"

// Set is a loaded dataset: the feature matrix in file order, the parallel
// label vector (1 = anomaly), and the feature column names.
type Set struct {
	X     [][]float64
	Y     []int
	Names []string
}

// Len reports the number of rows.
func (s *Set) Len() int { return len(s.X) }

// Dim reports the feature dimension.
func (s *Set) Dim() int { return len(s.Names) }

// Load reads a CSV (or gzipped CSV, by ".gz" suffix) with a header row,
// splits off the label column (DefaultLabelColumn when labelCol is empty),
// and parses the remaining columns as float64 features. Rows with a
// deviating field count are rejected by the CSV reader itself.
func Load(path, labelCol string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return nil, gzErr
		}
		defer gz.Close()
		r = gz
	}

	return read(csv.NewReader(r), labelCol)
}

// read consumes the CSV stream: header first, then one feature row per record.
func read(cr *csv.Reader, labelCol string) (*Set, error) {
	if labelCol == "" {
		labelCol = DefaultLabelColumn
	}

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	labelIdx := -1
	names := make([]string, 0, len(header)-1)
	for i, name := range header {
		if strings.TrimSpace(name) == labelCol {
			labelIdx = i

			continue
		}
		names = append(names, strings.TrimSpace(name))
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingLabel, labelCol)
	}

	set := &Set{Names: names}
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		x := make([]float64, 0, len(names))
		for col, cell := range record {
			v, parseErr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: row %d column %q", ErrBadValue, row, header[col])
			}
			if col == labelIdx {
				set.Y = append(set.Y, int(v))

				continue
			}
			x = append(x, v)
		}
		set.X = append(set.X, x)
	}
	if len(set.X) == 0 {
		return nil, ErrNoRows
	}

	return set, nil
}

// Shuffle applies a seeded Fisher–Yates permutation jointly to X and Y.
// Seed 0 selects a fixed default stream, so the zero value still replays
// identically.
func (s *Set) Shuffle(seed int64) {
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))
	for i := s.Len() - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s.X[i], s.X[j] = s.X[j], s.X[i]
		s.Y[i], s.Y[j] = s.Y[j], s.Y[i]
	}
}
