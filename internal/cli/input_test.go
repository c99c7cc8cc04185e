package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LTLA/powerit/matrix"
)

func TestDetectFormat(t *testing.T) {
	for _, tc := range []struct {
		path, format, want string
	}{
		{"a.csv", "auto", formatCSV},
		{"a.JSON", "", formatJSON},
		{"a.txt", "auto", formatCSV},
		{"-", "auto", formatCSV},
		{"a.csv", "json", formatJSON},
		{"a.json", "CSV", formatCSV},
	} {
		got, err := detectFormat(tc.path, tc.format)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s/%s", tc.path, tc.format)
	}

	_, err := detectFormat("a.csv", "xml")
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestReadMatrix_CSV(t *testing.T) {
	m, err := readMatrix(strings.NewReader("# covariance\n2, 1\n1,  2\n"), formatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, []float64{2, 1, 1, 2}, m.Data())
}

func TestReadMatrix_JSON(t *testing.T) {
	m, err := readMatrix(strings.NewReader(`[[1, 2, 3], [4, 5, 6]]`), formatJSON)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, [2]int{2, 3}, [2]int{r, c})
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
}

func TestReadMatrix_Errors(t *testing.T) {
	_, err := readMatrix(strings.NewReader("1,2\n3,x\n"), formatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2, field 2")

	_, err = readMatrix(strings.NewReader("1,2\n3\n"), formatCSV)
	assert.Error(t, err)

	_, err = readMatrix(strings.NewReader(""), formatCSV)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = readMatrix(strings.NewReader(`[[1,2],[3]]`), formatJSON)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = readMatrix(strings.NewReader(`{"a":1}`), formatJSON)
	assert.Error(t, err)
}

func TestLoadMatrix_Stdin(t *testing.T) {
	m, err := loadMatrix("-", "auto", strings.NewReader("4,0\n0,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0, 0, 1}, m.Data())

	_, err = loadMatrix("", "json", strings.NewReader("nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read stdin")
}
