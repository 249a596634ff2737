package parser

import (
	"regexp"
	"strconv"
	"strings"

	"shapecheck/internal/domain"
)

// frameLocation matches the file:line line that follows each function in a goroutine dump
var frameLocation = regexp.MustCompile(`^\s+(.+\.go):(\d+)(?: \+0x[0-9a-f]+)?$`)

// FailureParser turns failed results into stored failure records
type FailureParser struct{}

// NewFailureParser creates a new FailureParser
func NewFailureParser() *FailureParser {
	return &FailureParser{}
}

// ParseFailure returns one failure for a failed or errored result, nothing otherwise
func (p *FailureParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	if !result.Outcome.IsFailure() {
		return nil
	}

	failure := domain.TestFailure{
		TestID:     result.Test.ID,
		TestName:   result.Test.Name,
		Module:     result.Test.Module,
		Outcome:    result.Outcome,
		Message:    p.message(result),
		StackTrace: []string{},
	}

	if result.Stack != "" {
		frames := p.parseStack(result.Stack)
		failure.StackTrace = frames
		failure.File, failure.Line = p.panicLocation(frames)
	}
	return []domain.TestFailure{failure}
}

func (p *FailureParser) message(result domain.TestResult) string {
	var lines []string
	if result.Reason != "" {
		lines = append(lines, result.Reason)
	}
	lines = append(lines, result.Messages...)
	if len(result.Logs) > 0 {
		lines = append(lines, "", "Captured log:")
		lines = append(lines, result.Logs...)
	}
	return strings.Join(lines, "\n")
}

// parseStack reduces a goroutine dump to "file:line function" entries
func (p *FailureParser) parseStack(stack string) []string {
	lines := strings.Split(stack, "\n")
	var frames []string
	for i := 1; i < len(lines); i++ {
		m := frameLocation.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		function := strings.TrimSpace(lines[i-1])
		if idx := strings.LastIndex(function, "("); idx > 0 {
			function = function[:idx]
		}
		frames = append(frames, m[1]+":"+m[2]+" "+function)
	}
	return frames
}

// panicLocation returns the first frame after the runtime panic frames
func (p *FailureParser) panicLocation(frames []string) (string, int) {
	afterPanic := false
	for _, frame := range frames {
		location, function, _ := strings.Cut(frame, " ")
		if function == "panic" {
			afterPanic = true
			continue
		}
		if !afterPanic || strings.HasPrefix(function, "runtime.") {
			continue
		}
		file, line, ok := splitLocation(location)
		if ok {
			return file, line
		}
	}
	return "", 0
}

func splitLocation(location string) (string, int, bool) {
	idx := strings.LastIndex(location, ":")
	if idx < 0 {
		return "", 0, false
	}
	line, err := strconv.Atoi(location[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return location[:idx], line, true
}
