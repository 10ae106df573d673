package config

import (
	"path/filepath"
)

// Dataset and output file names.
const (
	BasicsFile  = "title.basics.tsv"
	RatingsFile = "title.ratings.tsv"
	AkasFile    = "title.akas.tsv"

	WatchedMoviesFile   = "watched_movies.xlsx"
	WatchedTVSeriesFile = "watched_tvseries.xlsx"

	RestructuredDir = "restructured_datasets"
)

// Paths holds every filesystem location derived from a Config.
type Paths struct {
	DatasetsDir     string
	Basics          string
	Ratings         string
	Akas            string
	RestructuredDir string
	OutputDir       string
	UserDir         string
	WatchedMovies   string
	WatchedTVSeries string
}

// Paths resolves the dataset, output and user locations. Explicit
// directory settings win over the ones derived from DataDir.
func (c *Config) Paths() Paths {
	root := c.DataDir
	if root == "" {
		root = "."
	}

	datasets := c.DatasetsDir
	if datasets == "" {
		datasets = filepath.Join(root, "datasets")
	}

	out := c.OutputDir
	if out == "" {
		out = filepath.Join(root, "outputs")
	}

	user := c.User
	if user == "" {
		user = DefaultUser
	}

	userDir := c.UserDir
	if userDir == "" {
		userDir = filepath.Join(root, "usrdata", user)
	}

	return Paths{
		DatasetsDir:     datasets,
		Basics:          filepath.Join(datasets, BasicsFile),
		Ratings:         filepath.Join(datasets, RatingsFile),
		Akas:            filepath.Join(datasets, AkasFile),
		RestructuredDir: filepath.Join(datasets, RestructuredDir),
		OutputDir:       out,
		UserDir:         userDir,
		WatchedMovies:   filepath.Join(userDir, WatchedMoviesFile),
		WatchedTVSeries: filepath.Join(userDir, WatchedTVSeriesFile),
	}
}
