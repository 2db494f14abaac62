package mirror

import (
	"fmt"

	"github.com/rohmanhakim/page-loader/pkg/failure"
)

// Stage names the step of a run that failed fatally.
type Stage string

const (
	StageFetchPage       Stage = "fetch page"
	StageCreateDirectory Stage = "create directory"
	StageRewritePage     Stage = "rewrite page"
	StageWritePage       Stage = "write page"
)

// MirrorError aborts a run. Only failures concerning the page itself or
// the resource directory are reported this way.
type MirrorError struct {
	Stage Stage
	Err   failure.ClassifiedError
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("mirror error: %s: %v", e.Stage, e.Err)
}

func (e *MirrorError) Unwrap() error {
	return e.Err
}

func (e *MirrorError) Severity() failure.Severity {
	return failure.SeverityFatal
}
