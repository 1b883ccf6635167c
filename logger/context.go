package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
)

const callerTmpl = "%s:%d"

var (
	_ encoding.TextMarshaler = LogContext{}

	redactedHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}
)

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	//
	// Caller helps goroutines identify the callers of the process that spawned it.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *req.Request being dispatched during the logging event.
	Request *req.Request
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// Credentials in request headers and the password query parameter are masked.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be thrown.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		r := make(map[string]any)
		r["method"] = lc.Request.Method()
		r["path"] = lc.Request.Path()

		if params := lc.Request.Params(); len(params) > 0 {
			r["params"] = params
		}

		if q := lc.Request.Queries(); len(q) > 0 {
			waypoint.Mask(q, "password")
			r["query"] = q
		}

		if h := lc.Request.Headers(); len(h) > 0 {
			for _, key := range redactedHeaders {
				if h.Get(key) != "" {
					h.Set(key, waypoint.LogMaskVal)
				}
			}
			r["header"] = h
		}

		if strings.HasPrefix(lc.Request.Header("Content-Type"), "application/json") {
			j := make(map[string]any)
			if err := json.Unmarshal(lc.Request.Body(), &j); err == nil {
				waypoint.MaskMap(j, "password")
				r["json"] = j
			}
		}

		m["request"] = r
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() { 		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return formatCaller(file, line)
}
