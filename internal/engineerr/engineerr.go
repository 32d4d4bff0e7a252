// Package engineerr defines the error kinds surfaced across init-time
// asset/GPU failures and per-frame recoverable failures.
// Pathfinding packages (dijkstra, astar, fov) deliberately never
// produce these; unreachable is a data outcome there, not an error.
package engineerr

import "fmt"

// Kind identifies which of the fixed failure categories an Error
// belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindAssetNotFound
	KindAssetParseError
	KindGpuInitError
	KindGpuCallFailed
	KindShaderCompileError
	KindShaderLinkError
	KindAttribNotFound
	KindUniformNotFound
	KindRichTextParseError
	KindIndexOutOfBounds
	KindInvalidConfig
)

func (k Kind) String() string {
	switch k {
	case KindAssetNotFound:
		return "AssetNotFound"
	case KindAssetParseError:
		return "AssetParseError"
	case KindGpuInitError:
		return "GpuInitError"
	case KindGpuCallFailed:
		return "GpuCallFailed"
	case KindShaderCompileError:
		return "ShaderCompileError"
	case KindShaderLinkError:
		return "ShaderLinkError"
	case KindAttribNotFound:
		return "AttribNotFound"
	case KindUniformNotFound:
		return "UniformNotFound"
	case KindRichTextParseError:
		return "RichTextParseError"
	case KindIndexOutOfBounds:
		return "IndexOutOfBounds"
	case KindInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Error is the single error type the engine returns; Kind lets callers
// branch without string matching and Offset/Code carry kind-specific
// context (byte offset for RichTextParseError, GL error code for
// GpuCallFailed).
type Error struct {
	Kind   Kind
	Offset int
	Code   uint32
	Cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRichTextParseError:
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	case e.Kind == KindGpuCallFailed:
		return fmt.Sprintf("%s: code 0x%x", e.Kind, e.Code)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause.Error())
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func NewParseError(offset int) *Error {
	return &Error{Kind: KindRichTextParseError, Offset: offset}
}

func NewGpuCallFailed(code uint32) *Error {
	return &Error{Kind: KindGpuCallFailed, Code: code}
}
