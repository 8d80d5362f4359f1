package oc

import (
	"go.opencensus.io/trace"
)

// DefaultSampler samples at 100% when tracing is enabled.
var DefaultSampler = trace.AlwaysSample()

// SetSpanStatus sets `span.SetStatus` to the proper status depending on `err`.
// If `err` is `nil` assumes `trace.StatusCodeOk`.
func SetSpanStatus(span *trace.Span, err error) {
	status := trace.Status{}
	if err != nil {
		status.Code = int32(trace.StatusCodeUnknown)
		status.Message = err.Error()
	}
	span.SetStatus(status)
}
