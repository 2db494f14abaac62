package rewriter

import (
	"fmt"

	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/failure"
)

type RewriteErrorCause string

const (
	ErrCauseReadFailure   RewriteErrorCause = "failed to read document"
	ErrCauseRenderFailure RewriteErrorCause = "failed to serialize document"
)

type RewriteError struct {
	Message string
	Cause   RewriteErrorCause
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite error: %s: %s", e.Cause, e.Message)
}

// Severity is always fatal: without the rewritten page there is nothing to save.
func (e *RewriteError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapRewriteErrorToMetadataCause maps rewriter-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRewriteErrorToMetadataCause(err *RewriteError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure, ErrCauseRenderFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
