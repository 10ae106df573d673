package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hupe1980/imdbsieve/internal/dataset"
)

func writeWatchedList(t *testing.T, path string, titles ...string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"primaryTitle", "tconst"}))

	for i, title := range titles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &[]interface{}{title, ""}))
	}

	require.NoError(t, f.SaveAs(path))
}

func readTitles(t *testing.T, path string) []string {
	t.Helper()

	f, err := dataset.ReadFile(context.Background(), path)
	require.NoError(t, err)

	var titles []string
	for i := 0; i < f.Len(); i++ {
		titles = append(titles, f.Row(i).Get(dataset.ColPrimaryTitle))
	}

	return titles
}

func TestFilter_FlagsCSV(t *testing.T) {
	dir := projectDir(t)

	stdout, _, err := executeCommand("--data-dir", dir, "filter",
		"--min-rating", "9.1", "--genre", "crime", "--format", "csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"The Godfather"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_movies.csv")))
	assert.Equal(t, []string{"Breaking Bad"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_tvseries.csv")))

	assert.Contains(t, stdout, "Loading datasets...")
	assert.Contains(t, stdout, `Filtering: genre contains "crime"...`)
	assert.Contains(t, stdout, "Profile: default")
	assert.Contains(t, stdout, "Criteria: rating>=9.1, genre=crime")
}

func TestFilter_DefaultXLSXWithWatchedList(t *testing.T) {
	dir := projectDir(t)
	writeWatchedList(t, filepath.Join(dir, "usrdata", "default", "watched_movies.xlsx"), "The Godfather")

	_, _, err := executeCommand("--data-dir", dir, "filter")
	require.NoError(t, err)

	wb, err := excelize.OpenFile(filepath.Join(dir, "outputs", "filtered_movies.xlsx"))
	require.NoError(t, err)

	defer wb.Close()

	rows, err := wb.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "The Shawshank Redemption")
}

func TestFilter_UserSelectsWatchedList(t *testing.T) {
	dir := projectDir(t)
	writeWatchedList(t, filepath.Join(dir, "usrdata", "alex", "watched_tvseries.xlsx"), "Breaking Bad")

	_, _, err := executeCommand("--data-dir", dir, "--user", "alex", "filter", "--format", "tsv")
	require.NoError(t, err)

	assert.Equal(t, []string{"The Office"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_tvseries.tsv")))
}

func TestFilter_Interactive(t *testing.T) {
	dir := projectDir(t)

	stdout, _, err := executeCommandWithInput("1,2\n1,000,000\n9.25\n",
		"--data-dir", dir, "filter", "--interactive", "--format", "csv")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Welcome to the Interactive Movie and TV Filter!")
	assert.Contains(t, stdout, "Criteria: votes>=1000000, rating>=9.25")
	assert.Equal(t, []string{"The Shawshank Redemption"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_movies.csv")))
	assert.Equal(t, []string{"Breaking Bad"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_tvseries.csv")))
}

func TestFilter_InteractiveRepeatedChoicesNarrow(t *testing.T) {
	dir := projectDir(t)

	stdout, _, err := executeCommandWithInput("3,3,1,1\nDrama\nRomance\n500000\n100\n",
		"--data-dir", dir, "filter", "-i", "--profile", "all", "--format", "csv")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Criteria: votes>=500000, genre=Drama, genre=Romance")
	assert.Equal(t, []string{"Casablanca"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_movies.csv")))
	assert.Empty(t, readTitles(t, filepath.Join(dir, "outputs", "filtered_tvseries.csv")))
}

func TestFilter_InteractiveNoFilters(t *testing.T) {
	dir := projectDir(t)

	stdout, _, err := executeCommandWithInput("4\n", "--data-dir", dir, "filter", "-i", "--format", "csv")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Proceeding without additional filters.")
	assert.Contains(t, stdout, "Criteria: none")
}

func TestFilter_InteractiveNoInput(t *testing.T) {
	_, _, err := executeCommandWithInput("", "--data-dir", projectDir(t), "filter", "--interactive")
	requireExitCode(t, err, exitUsage)
}

func TestFilter_Quiet(t *testing.T) {
	dir := projectDir(t)

	stdout, _, err := executeCommand("--data-dir", dir, "--quiet", "filter", "--format", "csv")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.FileExists(t, filepath.Join(dir, "outputs", "filtered_movies.csv"))
}

func TestFilter_AllProfile(t *testing.T) {
	dir := projectDir(t)

	_, _, err := executeCommand("--data-dir", dir, "filter", "--profile", "all", "--format", "csv")
	require.NoError(t, err)

	assert.Len(t, readTitles(t, filepath.Join(dir, "outputs", "filtered_movies.csv")), 4)
}

func TestFilter_CustomProfileFromFile(t *testing.T) {
	dir := projectDir(t)
	profiles := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(profiles, []byte("profiles:\n  recent:\n    extends: all\n    minYear: 2000\n"), 0o600))

	_, _, err := executeCommand("--data-dir", dir, "filter", "--profiles", profiles, "--profile", "recent", "--format", "csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Amélie"}, readTitles(t, filepath.Join(dir, "outputs", "filtered_movies.csv")))
}

func TestFilter_ConfigExportFormat(t *testing.T) {
	dir := projectDir(t)
	cfgFile := filepath.Join(t.TempDir(), "imdbsieve.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("export-format: tsv\n"), 0o600))

	_, _, err := executeCommand("--config", cfgFile, "--data-dir", dir, "filter", "--profile", "all")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "outputs", "filtered_movies.tsv"))

	_, _, err = executeCommand("--config", cfgFile, "--data-dir", dir, "filter", "--profile", "all", "--format", "csv")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "outputs", "filtered_movies.csv"))
}

func TestFilter_UsageErrors(t *testing.T) {
	dir := projectDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{"rating out of range", []string{"--min-rating", "42"}},
		{"votes not a number", []string{"--min-votes", "many"}},
		{"unknown profile", []string{"--profile", "nope"}},
		{"unknown format", []string{"--format", "parquet"}},
		{"positional argument", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--data-dir", dir, "filter"}, tt.args...)
			_, _, err := executeCommand(args...)
			require.Error(t, err)

			if tt.name != "positional argument" {
				requireExitCode(t, err, exitUsage)
			}
		})
	}
}

func TestFilter_MissingDatasets(t *testing.T) {
	_, _, err := executeCommand("--data-dir", t.TempDir(), "filter", "--format", "csv")
	requireExitCode(t, err, exitDataset)
}

func TestFilter_WriteFailure(t *testing.T) {
	dir := projectDir(t)
	// A regular file where the output directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "outputs"), nil, 0o600))

	_, _, err := executeCommand("--data-dir", dir, "filter", "--format", "csv")
	requireExitCode(t, err, exitWrite)
}

func TestCriteriaFromFlags(t *testing.T) {
	c, err := criteriaFromFlags(&filterOptions{minVotes: "5,000", minRating: "7.5", genre: "Drama"})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), c.MinVotes)
	assert.InDelta(t, 7.5, c.MinRating, 1e-9)
	assert.Equal(t, []string{"Drama"}, c.Genres)

	c, err = criteriaFromFlags(&filterOptions{})
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}
