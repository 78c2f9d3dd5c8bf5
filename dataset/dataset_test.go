package dataset_test

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rhforest/dataset"
)

const sampleCSV = "f1,f2,label\n" +
	"0.5,1.5,0\n" +
	"2.5,-3.5,1\n" +
	"4.0,0.25,0\n"

// writeTemp drops content into a fresh file under t.TempDir().
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// TestLoad_PlainCSV covers the happy path: header split, feature parsing,
// label extraction, file order preserved.
func TestLoad_PlainCSV(t *testing.T) {
	set, err := dataset.Load(writeTemp(t, "data.csv", sampleCSV), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "f2"}, set.Names, "label column leaves the feature names")
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 2, set.Dim())
	assert.Equal(t, [][]float64{{0.5, 1.5}, {2.5, -3.5}, {4.0, 0.25}}, set.X)
	assert.Equal(t, []int{0, 1, 0}, set.Y)
}

// TestLoad_Gzip verifies transparent gzip handling by suffix.
func TestLoad_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	set, err := dataset.Load(path, "label")
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len(), "gzipped content must load identically")
	assert.Equal(t, []int{0, 1, 0}, set.Y)
}

// TestLoad_LabelColumnPosition: the label column need not be last.
func TestLoad_LabelColumnPosition(t *testing.T) {
	csv := "is_attack,a,b\n1,7,8\n0,9,10\n"
	set, err := dataset.Load(writeTemp(t, "mid.csv", csv), "is_attack")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, set.Names)
	assert.Equal(t, [][]float64{{7, 8}, {9, 10}}, set.X)
	assert.Equal(t, []int{1, 0}, set.Y)
}

// TestLoad_Rejections pins every loader sentinel to its trigger.
func TestLoad_Rejections(t *testing.T) {
	_, err := dataset.Load(writeTemp(t, "nolabel.csv", "a,b\n1,2\n"), "")
	assert.ErrorIs(t, err, dataset.ErrMissingLabel, "a header without the label column must error")

	_, err = dataset.Load(writeTemp(t, "empty.csv", "a,label\n"), "")
	assert.ErrorIs(t, err, dataset.ErrNoRows, "a header-only file must error")

	_, err = dataset.Load(writeTemp(t, "text.csv", "a,label\noops,1\n"), "")
	assert.ErrorIs(t, err, dataset.ErrBadValue, "a non-numeric cell must error")

	_, err = dataset.Load(writeTemp(t, "ragged.csv", "a,b,label\n1,2,0\n3,4\n"), "")
	assert.Error(t, err, "ragged rows must error")

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.Error(t, err, "a missing file must error")
}

// TestShuffle_DeterministicPermutation: shuffling is a permutation (nothing
// lost, rows and labels move together) and replays exactly for a seed.
func TestShuffle_DeterministicPermutation(t *testing.T) {
	load := func() *dataset.Set {
		csv := "f,label\n10,0\n20,1\n30,0\n40,1\n50,0\n60,1\n"
		set, err := dataset.Load(writeTemp(t, "s.csv", csv), "")
		require.NoError(t, err)

		return set
	}

	a := load()
	a.Shuffle(77)
	b := load()
	b.Shuffle(77)
	require.Equal(t, a.X, b.X, "same seed must replay the same permutation")
	require.Equal(t, a.Y, b.Y)

	// Rows and labels stay paired: in the source, label 1 ⇔ feature ≡ 0 mod 20.
	for i := range a.X {
		wantLabel := 0
		if int(a.X[i][0])%20 == 0 {
			wantLabel = 1
		}
		assert.Equal(t, wantLabel, a.Y[i], "row %d lost its label pairing", i)
	}

	// Permutation integrity: all original features still present.
	assert.ElementsMatch(t,
		[]float64{10, 20, 30, 40, 50, 60},
		[]float64{a.X[0][0], a.X[1][0], a.X[2][0], a.X[3][0], a.X[4][0], a.X[5][0]},
		"shuffle must not drop or duplicate rows")

	c := load()
	c.Shuffle(0)
	d := load()
	d.Shuffle(0)
	assert.Equal(t, c.X, d.X, "seed 0 is a fixed default stream")
}
