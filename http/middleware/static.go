package middleware

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// contentTypes maps the file extensions Static serves to their Content-Type.
var contentTypes = map[string]string{
	".css":   "text/css",
	".eot":   "font/eot",
	".gif":   "image/gif",
	".gzip":  "application/gzip",
	".html":  "text/html",
	".ico":   "image/x-icon",
	".jpeg":  "image/jpeg",
	".jpg":   "image/jpeg",
	".js":    "text/javascript",
	".json":  "application/json",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".mpeg":  "video/mpeg",
	".otf":   "font/otf",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".ttf":   "font/ttf",
	".wav":   "audio/wav",
	".webm":  "video/webm",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".xml":   "application/xml",
	".zip":   "application/zip",
}

// Static answers GET requests for files in fsys, e.g., os.DirFS("public").
// Requests already answered by an earlier Handler, i.e., no longer http.StatusNotFound, are skipped.
//
// The request path, without its query string, names the file.
// Only files with an extension in the known set of content types are served;
// anything else, or a file that cannot be read, passes on to the next Handler.
// A served file ends the chain with http.StatusOK.
//
// If fsys is nil, Static does nothing.
func Static(fsys fs.FS) Handler {
	if fsys == nil {
		return HandlerFunc(NoopHandler)
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		if r.Method() != req.MethodGet || w.StatusCode() != http.StatusNotFound {
			return Next
		}

		name := strings.TrimPrefix(r.Path(), "/")
		if !fs.ValidPath(name) || name == "." {
			return Next
		}

		ct, ok := contentTypes[strings.ToLower(path.Ext(name))]
		if !ok {
			return Next
		}

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Next
		}

		w.Status(http.StatusOK).Body(b, ct)
		return End
	})
}
