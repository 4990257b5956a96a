package main

import "github.com/rxtech-lab/argo-signal/internal/analysis"

// ReportMsg carries a finished analysis run.
type ReportMsg struct {
	Report *analysis.Report
}

// ReportErrorMsg indicates a failed analysis run.
type ReportErrorMsg struct {
	Symbol string
	Err    error
}
