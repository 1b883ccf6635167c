package middleware

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

const (
	// DefaultCompressLevel balances speed and size for gzip.
	DefaultCompressLevel = gzip.DefaultCompression

	brotliLevel = 4
)

// Compress encodes a non-empty response body with brotli or gzip,
// whichever the client accepts, preferring brotli.
// level is the gzip compression level.
//
// Compress belongs after the routers in a server's global chain.
// Bodies already carrying a Content-Encoding are left alone,
// as is the body if encoding fails.
func Compress(level int) Handler {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = DefaultCompressLevel
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		body := w.BodyBytes()
		if len(body) == 0 || w.Header("Content-Encoding") != "" {
			return Next
		}

		accepted := acceptedEncodings(r.Header("Accept-Encoding"))

		var (
			encoding string
			encoder  io.WriteCloser
			buf      = new(bytes.Buffer)
		)

		switch {
		case accepted["br"]:
			encoding = "br"
			encoder = brotli.NewWriterLevel(buf, brotliLevel)
		case accepted["gzip"]:
			encoding = "gzip"
			gz, err := gzip.NewWriterLevel(buf, level)
			if err != nil {
				return Next
			}
			encoder = gz
		default:
			return Next
		}

		if _, err := encoder.Write(body); err != nil {
			return Next
		}

		if err := encoder.Close(); err != nil {
			return Next
		}

		if err := w.UpdateBody(buf.Bytes()); err != nil {
			return Next
		}

		w.SetHeader("Content-Encoding", encoding)
		w.SetHeader("Vary", "Accept-Encoding")
		return Next
	})
}

// acceptedEncodings parses an Accept-Encoding header,
// omitting codings the client refuses with a zero quality value.
func acceptedEncodings(header string) map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding == "" {
			continue
		}

		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if val, err := strconv.ParseFloat(q, 64); err == nil && val == 0 {
				continue
			}
		}

		out[coding] = true
	}

	return out
}
