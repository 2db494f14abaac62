package metadata

import (
	"time"

	"github.com/sirupsen/logrus"
)

/*
Metadata Collected
- Fetch outcomes (status, duration, content type)
- Persisted artifacts and their content hashes
- Failures, with the package and action that observed them

Metadata is write-only.
No component may read metadata to decide whether to abort or skip.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)

	// RecordSkip notes a reference that was deliberately left alone.
	RecordSkip(packageName string, reason string, attrs []Attribute)
}

type MirrorFinalizer interface {
	RecordFinalMirrorStats(
		totalResources int,
		savedResources int,
		skippedResources int,
		duration time.Duration,
	)
}

/*
Recorder captures structured mirror events and forwards them to a logrus
logger. It must not:
- perform I/O decisions
- affect control flow
Events are emitted synchronously in the order they are received.
*/
type Recorder struct {
	logger logrus.FieldLogger
}

func NewRecorder(logger logrus.FieldLogger) Recorder {
	return Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	r.logger.WithFields(toFields(attrs)).WithFields(logrus.Fields{
		"package":     packageName,
		"action":      action,
		"cause":       cause.String(),
		"observed_at": observedAt.Format(time.RFC3339Nano),
	}).Error(details)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
) {
	r.logger.WithFields(logrus.Fields{
		string(AttrURL):        fetchUrl,
		string(AttrHTTPStatus): httpStatus,
		"duration":             duration,
		"content_type":         contentType,
	}).Debug("fetched")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	r.logger.WithFields(toFields(attrs)).WithFields(logrus.Fields{
		"kind":           string(kind),
		string(AttrPath): path,
	}).Debug("saved")
}

func (r *Recorder) RecordSkip(packageName string, reason string, attrs []Attribute) {
	r.logger.WithFields(toFields(attrs)).WithFields(logrus.Fields{
		"package": packageName,
	}).Debug(reason)
}

/*
RecordFinalMirrorStats records a terminal summary of a completed run.

Contract:
  - MUST be called at most once per run, after the last resource.
  - The stats MUST be derived from orchestrator state.
*/
func (r *Recorder) RecordFinalMirrorStats(
	totalResources int,
	savedResources int,
	skippedResources int,
	duration time.Duration,
) {
	stats := mirrorStats{
		totalResources:   totalResources,
		savedResources:   savedResources,
		skippedResources: skippedResources,
		duration:         duration,
	}

	entry := r.logger.WithFields(logrus.Fields{
		"total_resources":   stats.totalResources,
		"saved_resources":   stats.savedResources,
		"skipped_resources": stats.skippedResources,
		"duration_ms":       stats.duration.Milliseconds(),
	})
	if stats.skippedResources > 0 {
		entry.Warnf("%d of %d resources were not saved", stats.skippedResources, stats.totalResources)
		return
	}
	entry.Info("mirror finished")
}

func toFields(attrs []Attribute) logrus.Fields {
	fields := make(logrus.Fields, len(attrs))
	for _, attr := range attrs {
		fields[string(attr.Key)] = attr.Value
	}
	return fields
}

// NoopSink implements MetadataSink and MirrorFinalizer but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordSkip(packageName string, reason string, attrs []Attribute) {}

func (n *NoopSink) RecordFinalMirrorStats(
	totalResources int,
	savedResources int,
	skippedResources int,
	duration time.Duration,
) {
}
