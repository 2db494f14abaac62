package mirror_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rohmanhakim/page-loader/internal/fetcher"
	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/internal/mirror"
	"github.com/rohmanhakim/page-loader/internal/storage"
	"github.com/rohmanhakim/page-loader/pkg/failure"
	"github.com/rohmanhakim/page-loader/pkg/hashutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	attrs       []metadata.Attribute
}

type finalStats struct {
	total    int
	saved    int
	skipped  int
	duration time.Duration
}

// mirrorSinkMock is a test double for metadata.MetadataSink and
// metadata.MirrorFinalizer
type mirrorSinkMock struct {
	errors     []errorEvent
	fetched    []string
	artifacts  []string
	finalStats []finalStats
}

func (m *mirrorSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
		attrs:       attrs,
	})
}

func (m *mirrorSinkMock) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, contentType string) {
	m.fetched = append(m.fetched, fetchUrl)
}

func (m *mirrorSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.artifacts = append(m.artifacts, path)
}

func (m *mirrorSinkMock) RecordSkip(packageName string, reason string, attrs []metadata.Attribute) {
}

func (m *mirrorSinkMock) RecordFinalMirrorStats(total int, saved int, skipped int, duration time.Duration) {
	m.finalStats = append(m.finalStats, finalStats{
		total:    total,
		saved:    saved,
		skipped:  skipped,
		duration: duration,
	})
}

// hostRewritingTransport sends every request to target while keeping the
// original Host header, so pages can be served for hosts like test.com.
type hostRewritingTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t hostRewritingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host
	clone.Host = req.URL.Host
	return t.base.RoundTrip(clone)
}

// newMirrorForServer wires a Mirror whose fetcher reaches server for any
// host, backed by real local storage.
func newMirrorForServer(t *testing.T, server *httptest.Server) (mirror.Mirror, *mirrorSinkMock) {
	t.Helper()
	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	sink := &mirrorSinkMock{}
	client := &http.Client{
		Timeout: 5 * time.Second,
		Transport: hostRewritingTransport{
			target: target,
			base:   server.Client().Transport,
		},
	}
	httpFetcher := fetcher.NewHttpFetcher(sink, client, "page-loader-test")
	localStorage := storage.NewLocalStorage(sink, hashutil.HashAlgoSHA256)
	return mirror.NewMirrorWithDeps(sink, sink, &httpFetcher, &localStorage), sink
}

func mustParseURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

// fetcherMock is a testify mock for fetcher.Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(ctx context.Context, fetchUrl url.URL) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, fetchUrl)
	result := args.Get(0).(fetcher.FetchResult)
	if err := args.Get(1); err != nil {
		return result, err.(failure.ClassifiedError)
	}
	return result, nil
}

// storageMock is a testify mock for storage.Storage
type storageMock struct {
	mock.Mock
}

func (s *storageMock) CreateDirectory(parent string, name string) (string, failure.ClassifiedError) {
	args := s.Called(parent, name)
	if err := args.Get(1); err != nil {
		return args.String(0), err.(failure.ClassifiedError)
	}
	return args.String(0), nil
}

func (s *storageMock) WriteFile(path string, data []byte) failure.ClassifiedError {
	args := s.Called(path, data)
	if err := args.Get(0); err != nil {
		return err.(failure.ClassifiedError)
	}
	return nil
}
