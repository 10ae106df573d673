// Package dataset loads the IMDb non-commercial dataset files
// (title.basics, title.ratings and title.akas) into frames.
//
// The files are tab separated with a header row, no quoting, and `\N` for
// missing values. Loading the three files happens concurrently; basics and
// ratings are then inner-joined on tconst to form the title catalog.
package dataset
