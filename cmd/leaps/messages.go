package main

import "github.com/rxtech-lab/leaps/internal/analysis"

// AnalysisMsg carries the finished analysis of the selected symbol.
type AnalysisMsg struct {
	Result *analysis.Result
}

// AnalysisErrorMsg indicates the analysis of the selected symbol failed.
type AnalysisErrorMsg struct {
	Err error
}
