package metadata

import (
	"time"
)

/*
mirrorStats
  - Terminal, derived summary of a completed mirror run
  - Computed by the orchestrator after the last resource was processed
  - Recorded exactly once
  - Must not influence control flow
*/
type mirrorStats struct {
	totalResources   int
	savedResources   int
	skippedResources int
	duration         time.Duration
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used to decide between abort and skip.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

  - DNS resolution failures, refused connections, timeouts, broken bodies.

# CauseHTTPStatus

  - The server answered, but with a failure status (4xx, 5xx).

# CauseContentInvalid

  - Content was fetched but could not be processed meaningfully.

# CauseStorageFailure

  - Directory creation or file write failed (exists, permission, disk full).
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseHTTPStatus
	CauseContentInvalid
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseHTTPStatus:
		return "http_status"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactDirectory ArtifactKind = "directory"
	ArtifactResource  ArtifactKind = "resource"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrHost        AttributeKey = "host"
	AttrPath        AttributeKey = "path"
	AttrTag         AttributeKey = "tag"
	AttrAttribute   AttributeKey = "attribute"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrWritePath   AttributeKey = "write_path"
	AttrContentHash AttributeKey = "content_hash"
	AttrSizeByte    AttributeKey = "size_byte"
	AttrMessage     AttributeKey = "message"
)
