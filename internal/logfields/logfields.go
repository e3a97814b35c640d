package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPackage    = "package"
	KeyEntryPoint = "entry_point"
	KeyMember     = "member"
	KeyKind       = "kind"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyGeneration = "generation_id"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyReference  = "reference"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Package(name string) slog.Attr    { return slog.String(KeyPackage, name) }
func EntryPoint(name string) slog.Attr { return slog.String(KeyEntryPoint, name) }
func Member(name string) slog.Attr     { return slog.String(KeyMember, name) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func GenerationID(id string) slog.Attr { return slog.String(KeyGeneration, id) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr    { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Reference(ref string) slog.Attr   { return slog.String(KeyReference, ref) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
