package dataset

// Column names used by the IMDb dataset files.
const (
	ColTconst         = "tconst"
	ColTitleType      = "titleType"
	ColPrimaryTitle   = "primaryTitle"
	ColOriginalTitle  = "originalTitle"
	ColIsAdult        = "isAdult"
	ColStartYear      = "startYear"
	ColEndYear        = "endYear"
	ColRuntimeMinutes = "runtimeMinutes"
	ColGenres         = "genres"

	ColAverageRating = "averageRating"
	ColNumVotes      = "numVotes"

	ColTitleID         = "titleId"
	ColOrdering        = "ordering"
	ColTitle           = "title"
	ColRegion          = "region"
	ColLanguage        = "language"
	ColTypes           = "types"
	ColAttributes      = "attributes"
	ColIsOriginalTitle = "isOriginalTitle"
)

// Title types the tool splits exports by.
const (
	TypeMovie    = "movie"
	TypeTVSeries = "tvSeries"
)

// NumericColumns lists the columns holding numbers. Writers use it to emit
// typed cells instead of text.
var NumericColumns = map[string]bool{
	ColIsAdult:         true,
	ColStartYear:       true,
	ColEndYear:         true,
	ColRuntimeMinutes:  true,
	ColAverageRating:   true,
	ColNumVotes:        true,
	ColOrdering:        true,
	ColIsOriginalTitle: true,
}
