// Package urlutil содержит функции для безопасного вывода URL в логи.
package urlutil

import "net/url"

const (
	masked  = "***"
	invalid = "***invalid-url***"
)

// MaskURL готовит адрес Pushgateway или OTLP-коллектора для лога.
// Учётные данные, query и fragment заменяются на "***", путь сохраняется:
// по нему видно, какой endpoint настроен (/v1/traces, /metrics/job/...).
//
//	MaskURL("http://user:pw@pushgateway:9091/metrics") == "http://***@pushgateway:9091/metrics"
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid
	}
	out := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	if u.User != nil {
		out.User = url.User(masked)
	}
	if u.RawQuery != "" {
		out.RawQuery = masked
	}
	if u.Fragment != "" {
		out.Fragment = masked
	}
	return out.String()
}
