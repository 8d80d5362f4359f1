package oc

import (
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var _ trace.Exporter = &LogrusExporter{}

// LogrusExporter is an OpenCensus `trace.Exporter` that exports
// `trace.SpanData` to logrus output.
type LogrusExporter struct{}

// ExportSpan exports `s` based on the the following rules:
//
// 1. All output will contain `s.Attributes`, `s.TraceID`, `s.SpanID`,
// `s.ParentSpanID` for correlation.
//
// 2. Any calls that have a `StatusCodeOk` status will be logged at
// `logrus.DebugLevel`, all others are logged at `logrus.ErrorLevel` with the
// status message attached.
func (le *LogrusExporter) ExportSpan(s *trace.SpanData) {
	entry := logrus.WithFields(logrus.Fields{
		"traceID":      s.TraceID.String(),
		"spanID":       s.SpanID.String(),
		"parentSpanID": s.ParentSpanID.String(),
		"startTime":    s.StartTime,
		"endTime":      s.EndTime,
		"duration":     s.EndTime.Sub(s.StartTime).String(),
		"name":         s.Name,
	})
	for k, v := range s.Attributes {
		entry = entry.WithField(k, v)
	}
	level := logrus.DebugLevel
	if s.Status.Code != int32(trace.StatusCodeOK) {
		level = logrus.ErrorLevel
		entry = entry.WithField(logrus.ErrorKey, s.Status.Message)
	}
	entry.Log(level, "Span")
}
