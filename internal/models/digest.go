package models

import "time"

// DateInfo is the calendar date of the published digest, zero-padded.
type DateInfo struct {
	Year  string
	Month string
	Day   string
}

// String returns the date as YYYY-MM-DD.
func (d DateInfo) String() string {
	return d.Year + "-" + d.Month + "-" + d.Day
}

// RunConfig holds the two host inputs of a run.
type RunConfig struct {
	TargetDir string
	Lang      string
}

// Run describes one completed fetch/transform/write cycle.
type Run struct {
	Date       DateInfo
	Lang       string
	URL        string
	OutputPath string
	Bytes      int
	FinishedAt time.Time
}
