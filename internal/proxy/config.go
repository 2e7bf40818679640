package proxy

import "strings"

// backendEnvVars is the ordered fallback chain for the calendar backend URL.
var backendEnvVars = []string{"CALENDAR_API_URL", "PUBLIC_API_URL"}

const defaultBackendHost = "127.0.0.1:8000"

// ResolveBackendURL resolves the backend base URL from the environment:
// first non-empty variable of the chain wins, otherwise the default host.
// A scheme is prepended when missing and any trailing slash stripped. The
// lookup function is injected so tests can substitute endpoints.
func ResolveBackendURL(getenv func(string) string) string {
	raw := ""
	for _, name := range backendEnvVars {
		if v := getenv(name); v != "" {
			raw = v
			break
		}
	}
	if raw == "" {
		raw = defaultBackendHost
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}
