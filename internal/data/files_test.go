package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPaths(t *testing.T) {
	assert.Equal(t, []string{"a.csv", "b.csv"}, SplitPaths(" a.csv, ,b.csv,"))
	assert.Empty(t, SplitPaths(""))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	seasons := filepath.Join(dir, "seasons")
	require.NoError(t, os.MkdirAll(seasons, 0o755))

	write := func(path, body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write(filepath.Join(seasons, "2021.csv"), "orderID,gender,contract,actual,asset\ng1,1,100,90,7\ng2,0,50,40,8\n")
	write(filepath.Join(seasons, "2022.csv"), "orderID,gender,contract,actual,asset\ng1,1,100,99,7\n")
	write(filepath.Join(seasons, "readme.txt"), "not a csv")
	extra := filepath.Join(dir, "extra.csv")
	write(extra, "orderID,gender,contract,actual,asset\n,1,1,1,1\ng3,1,10,10,9\n")

	ds, err := LoadFiles([]string{seasons, extra}, DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"g1", "g2", "g3"}, ds.Orders())
	assert.Equal(t, 4, ds.Rows)
	assert.Equal(t, 1, ds.Skipped)
	assert.False(t, ds.AssetSynthesized)
	assert.Equal(t, "2021.csv (+2 more)", ds.Name)

	g1, err := ds.Lookup("g1")
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 99}, g1.Actual, "periods follow file order")
}

func TestLoadFiles_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFiles([]string{dir}, DefaultLoadOptions())
	assert.Error(t, err, "directory without CSVs")

	_, err = LoadFiles([]string{filepath.Join(dir, "missing.csv")}, DefaultLoadOptions())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("orderID,contract\n"), 0o644))
	_, err = LoadFiles([]string{bad}, DefaultLoadOptions())
	assert.ErrorContains(t, err, "bad.csv")
}
