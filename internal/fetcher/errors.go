package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/failure"
)

// FailureKind is the closed set of ways a fetch can fail.
type FailureKind int

const (
	// KindTransport: no usable response (DNS, refused connection, timeout,
	// broken body).
	KindTransport FailureKind = iota
	// KindHTTPStatus: the server answered with a failure status.
	KindHTTPStatus
)

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport failure"
	case KindHTTPStatus:
		return "http failure"
	default:
		return "unknown failure"
	}
}

type FetchErrorCause string

const (
	ErrCauseInvalidRequest        FetchErrorCause = "invalid request"
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseRequestClientError    FetchErrorCause = "4xx"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
)

type FetchError struct {
	Message    string
	Kind       FailureKind
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetcher error: %s: status %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("fetcher error: %s: %s", e.Kind, e.Cause)
}

// Severity is always recoverable: a failed fetch concerns one URL only.
// Whether that URL was mandatory is the orchestrator's call.
func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Kind {
	case KindTransport:
		return metadata.CauseNetworkFailure
	case KindHTTPStatus:
		return metadata.CauseHTTPStatus
	default:
		return metadata.CauseUnknown
	}
}
