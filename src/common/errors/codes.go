package errors

// Common error codes used across domains
const (
	CodeNotFound       Code = "not_found"
	CodeAlreadyExists  Code = "already_exists"
	CodeInvalidRequest Code = "invalid_request"
	CodeInternal       Code = "internal_error"
)

// Exit codes, one per failure class so build scripts can branch on them.
const (
	ExitUsage    = 1
	ExitPatch    = 2
	ExitWrite    = 3
	ExitLink     = 4
	ExitProbe    = 5
	ExitInternal = 1
)

// ============================================================================
// Patch Errors
// ============================================================================

var (
	// ErrMakefileNotFound is returned when the input Makefile does not exist
	ErrMakefileNotFound = New(DomainPatch, CodeNotFound, ExitPatch,
		"Makefile not found")

	// ErrWriteFailed is returned when the patched Makefile cannot be written
	ErrWriteFailed = New(DomainPatch, "write_failed", ExitWrite,
		"Failed to write patched Makefile")

	// ErrPatchAborted is returned when the user declines the overwrite prompt
	ErrPatchAborted = New(DomainPatch, "aborted", ExitUsage,
		"Patch aborted")
)

// ============================================================================
// Probe Errors
// ============================================================================

var (
	// ErrInterpreterNotFound is returned when no Python interpreter is on PATH
	ErrInterpreterNotFound = New(DomainProbe, CodeNotFound, ExitProbe,
		"Python interpreter not found")

	// ErrProbeFailed is returned when the interpreter cannot report its
	// build configuration
	ErrProbeFailed = New(DomainProbe, "probe_failed", ExitProbe,
		"Failed to read Python build configuration")
)

// ============================================================================
// Link Errors
// ============================================================================

var (
	// ErrLinkExists is returned when the symlink target path is already occupied
	ErrLinkExists = New(DomainLink, CodeAlreadyExists, ExitLink,
		"Link target already exists")

	// ErrLinkSourceMissing is returned when the local_scan glue source is not
	// present in the source directory
	ErrLinkSourceMissing = New(DomainLink, "source_missing", ExitLink,
		"local_scan glue source not found")
)

// ============================================================================
// Config Errors
// ============================================================================

var (
	// ErrInvalidConfig is returned when configuration values fail validation
	ErrInvalidConfig = New(DomainConfig, CodeInvalidRequest, ExitUsage,
		"Invalid configuration")
)

// ============================================================================
// Internal Errors
// ============================================================================

var (
	// ErrInternal is a generic internal error
	ErrInternal = New(DomainInternal, CodeInternal, ExitInternal,
		"Internal error")
)
