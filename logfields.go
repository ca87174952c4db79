package folio

import "log/slog"

// Canonical log field names, shared by the library and the CLI.
const (
	KeyBuildID  = "build_id"
	KeyPath     = "path"
	KeyRoute    = "route"
	KeyKind     = "kind"
	KeyCount    = "count"
	KeyFile     = "file"
	KeySlot     = "slot"
	KeyDuration = "duration"
	KeyError    = "error"
)

func attrBuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func attrPath(p string) slog.Attr     { return slog.String(KeyPath, p) }
func attrRoute(p string) slog.Attr    { return slog.String(KeyRoute, p) }
func attrKind(k string) slog.Attr     { return slog.String(KeyKind, k) }
func attrCount(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func attrFile(f string) slog.Attr     { return slog.String(KeyFile, f) }
func attrSlot(s string) slog.Attr     { return slog.String(KeySlot, s) }

func attrError(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
