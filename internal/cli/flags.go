package cli

import "shapecheck/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath   string
	Processors    int
	MarkExpr      string
	Keyword       string
	FailFast      bool
	OnlyFailed    bool
	StrictMarkers bool
	XFailStrict   bool
	OpenFailures  bool
	Verbose       bool
	ShowMarkers   bool
	LogLevel      string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:    f.Processors,
		MarkExpr:      f.MarkExpr,
		Keyword:       f.Keyword,
		FailFast:      f.FailFast,
		OnlyFailed:    f.OnlyFailed,
		StrictMarkers: f.StrictMarkers,
		XFailStrict:   f.XFailStrict,
		OpenFailures:  f.OpenFailures,
		Verbose:       f.Verbose,
		ShowMarkers:   f.ShowMarkers,
		LogLevel:      f.LogLevel,
	}
}
