package constants

import "io/fs"

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// ErrorBodyLimitBytes caps how many bytes of an API error body we read
	// for a diagnostic message.
	ErrorBodyLimitBytes = 4096
	// ResponseSnippetRunes caps how much of a model reply is echoed to the
	// console.
	ResponseSnippetRunes = 100
)

const (
	// KeyPreviewHead and KeyPreviewTail control how much of a credential is
	// shown in masked previews. Everything between is elided.
	KeyPreviewHead = 20
	KeyPreviewTail = 4
)
