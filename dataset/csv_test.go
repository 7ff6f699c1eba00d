// SPDX-License-Identifier: MIT
package dataset_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamCSV = `site_code,date,ph,nitrate,chloride
A,2020-01,7.1,0.5,-999
A,2020-02,7.3,0.7,12
B,2020-01,6.5,NA,20
B,2020-02,6.7,1.5,22
C,2020-01,-999,2.0,30
`

func readStream(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.ReadCSV(strings.NewReader(streamCSV))
	require.NoError(t, err)

	return f
}

func TestReadCSVInfersKinds(t *testing.T) {
	f := readStream(t)

	assert.Equal(t, 5, f.Len())
	assert.Equal(t, []string{"site_code", "date", "ph", "nitrate", "chloride"}, f.Schema().Names())
	assert.Equal(t, []string{"ph", "nitrate", "chloride"}, f.Schema().NumericNames())

	nitrate, err := f.Numeric("nitrate")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nitrate[2]), "NA is missing")
	assert.Equal(t, 1.5, nitrate[3])

	sites, err := f.Categorical("site_code")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", "B", "B", "C"}, sites)

	_, err = f.Numeric("site_code")
	assert.ErrorIs(t, err, dataset.ErrKindMismatch)
	_, err = f.Numeric("nope")
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

func TestReadCSVOptions(t *testing.T) {
	in := "id;score\n001;4\n002;-\n"

	f, err := dataset.ReadCSV(strings.NewReader(in),
		dataset.WithDelimiter(';'),
		dataset.WithMissingTokens("-"),
		dataset.WithColumnKind("id", dataset.Categorical),
	)
	require.NoError(t, err)

	ids, err := f.Categorical("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, ids, "forced categorical keeps leading zeros")

	score, err := f.Numeric("score")
	require.NoError(t, err)
	assert.Equal(t, 4.0, score[0])
	assert.True(t, math.IsNaN(score[1]))
}

func TestReadCSVErrors(t *testing.T) {
	_, err := dataset.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, dataset.ErrEmptyInput)

	_, err = dataset.ReadCSV(strings.NewReader("a,b\n1\n"))
	assert.ErrorIs(t, err, dataset.ErrRaggedRow)

	_, err = dataset.ReadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.ErrorIs(t, err, dataset.ErrDuplicateName)

	_, err = dataset.ReadCSV(strings.NewReader("a\nx\n"), dataset.WithColumnKind("a", dataset.Numeric))
	assert.ErrorIs(t, err, dataset.ErrKindMismatch)

	_, err = dataset.ReadCSV(strings.NewReader("a\n1\n"), dataset.WithColumnKind("b", dataset.Numeric))
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

func TestParseKind(t *testing.T) {
	k, err := dataset.ParseKind(" Numeric ")
	require.NoError(t, err)
	assert.Equal(t, dataset.Numeric, k)
	assert.Equal(t, "categorical", dataset.Categorical.String())

	_, err = dataset.ParseKind("date")
	assert.ErrorIs(t, err, dataset.ErrUnknownKind)
}
