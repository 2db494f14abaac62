package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/failure"
)

/*
Responsibilities

- Perform one blocking HTTP GET per call
- Apply headers and the configured timeout
- Classify failures as transport or HTTP status

Fetch Semantics

- Redirects are followed by the http.Client
- Any final status >= 400 is a failure
- No retries
- Every call is recorded with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

type HttpFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	userAgent    string
}

func NewHttpFetcher(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	userAgent string,
) HttpFetcher {
	return HttpFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		userAgent:    userAgent,
	}
}

func (h *HttpFetcher) Fetch(
	ctx context.Context,
	fetchUrl url.URL,
) (FetchResult, failure.ClassifiedError) {
	startTime := time.Now()

	result, err := h.performFetch(ctx, fetchUrl)

	duration := time.Since(startTime)

	var statusCode int
	var contentType string
	if err != nil {
		statusCode = err.StatusCode
	} else {
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	h.metadataSink.RecordFetch(
		fetchUrl.String(),
		statusCode,
		duration,
		contentType,
	)

	if err != nil {
		h.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			"HttpFetcher.Fetch",
			mapFetchErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
				metadata.NewAttr(metadata.AttrMessage, err.Message),
			},
		)
		return FetchResult{}, err
	}

	return result, nil
}

func (h *HttpFetcher) performFetch(ctx context.Context, fetchUrl url.URL) (FetchResult, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Kind:    KindTransport,
			Cause:   ErrCauseInvalidRequest,
		}
	}

	for key, value := range requestHeaders(h.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		cause := ErrCauseNetworkFailure
		if isTimeout(err) {
			cause = ErrCauseTimeout
		}
		return FetchResult{}, &FetchError{
			Message: fmt.Sprintf("request failed: %v", err),
			Kind:    KindTransport,
			Cause:   cause,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("server error: %d", resp.StatusCode),
			Kind:       KindHTTPStatus,
			Cause:      ErrCauseRequest5xx,
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode >= 400:
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("client error: %d", resp.StatusCode),
			Kind:       KindHTTPStatus,
			Cause:      ErrCauseRequestClientError,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		cause := ErrCauseReadResponseBodyError
		if isTimeout(err) {
			cause = ErrCauseTimeout
		}
		return FetchResult{}, &FetchError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Kind:    KindTransport,
			Cause:   cause,
		}
	}

	return FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			contentType:         resp.Header.Get("Content-Type"),
			transferredSizeByte: uint64(len(body)),
		},
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "*/*",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
