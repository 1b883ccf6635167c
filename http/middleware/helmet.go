package middleware

import (
	"strconv"
	"strings"

	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// A HelmetConfig chooses the security headers Helmet sets.
// Empty values leave the corresponding header unset.
type HelmetConfig struct {
	ContentSecurityPolicy         string
	CrossOriginEmbedderPolicy     string
	CrossOriginOpenerPolicy       string
	CrossOriginResourcePolicy     string
	OriginAgentCluster            bool
	ReferrerPolicy                []string
	StrictTransportSecurity       HSTS
	XContentTypeOptions           bool
	XDNSPrefetchControl           bool
	XDownloadOptions              bool
	XFrameOptions                 string
	XPermittedCrossDomainPolicies string
	XXSSProtection                bool
}

// HSTS configures the Strict-Transport-Security header.
// A zero MaxAge omits the header.
type HSTS struct {
	MaxAge            int
	IncludeSubDomains bool
	Preload           bool
}

func (h HSTS) String() string {
	if h.MaxAge <= 0 {
		return ""
	}

	val := "max-age=" + strconv.Itoa(h.MaxAge)
	if h.IncludeSubDomains {
		val += "; includeSubDomains"
	}
	if h.Preload {
		val += "; preload"
	}

	return val
}

// DefaultHelmetConfig returns the headers commonly recommended for an application served over HTTPS.
func DefaultHelmetConfig() HelmetConfig {
	return HelmetConfig{
		ContentSecurityPolicy:         "default-src 'self'; base-uri 'self'; font-src 'self' https: data:; form-action 'self'; frame-ancestors 'self'; img-src 'self' data:; object-src 'none'; script-src 'self'; script-src-attr 'none'; style-src 'self' https: 'unsafe-inline'; upgrade-insecure-requests",
		CrossOriginOpenerPolicy:       "same-origin",
		CrossOriginResourcePolicy:     "same-origin",
		OriginAgentCluster:            true,
		ReferrerPolicy:                []string{"no-referrer"},
		StrictTransportSecurity:       HSTS{MaxAge: 15552000, IncludeSubDomains: true},
		XContentTypeOptions:           true,
		XDNSPrefetchControl:           true,
		XDownloadOptions:              true,
		XFrameOptions:                 "SAMEORIGIN",
		XPermittedCrossDomainPolicies: "none",
		XXSSProtection:                true,
	}
}

// Helmet sets security related headers on every response and removes X-Powered-By.
func Helmet(cfg HelmetConfig) Handler {
	headers := make(map[string]string)
	set := func(key, val string) {
		if val != "" {
			headers[key] = val
		}
	}

	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	set("Referrer-Policy", strings.Join(cfg.ReferrerPolicy, ","))
	set("Strict-Transport-Security", cfg.StrictTransportSecurity.String())
	set("X-Frame-Options", cfg.XFrameOptions)
	set("X-Permitted-Cross-Domain-Policies", cfg.XPermittedCrossDomainPolicies)

	if cfg.OriginAgentCluster {
		set("Origin-Agent-Cluster", "?1")
	}
	if cfg.XContentTypeOptions {
		set("X-Content-Type-Options", "nosniff")
	}
	if cfg.XDNSPrefetchControl {
		set("X-DNS-Prefetch-Control", "off")
	}
	if cfg.XDownloadOptions {
		set("X-Download-Options", "noopen")
	}
	if cfg.XXSSProtection {
		set("X-XSS-Protection", "0")
	}

	return HandlerFunc(func(_ *req.Request, w *resp.Response) Result {
		for key, val := range headers {
			w.SetHeader(key, val)
		}

		w.DelHeader("X-Powered-By")
		return Next
	})
}
