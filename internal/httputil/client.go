package httputil

import (
	"net/http"
	"time"
)

// NewClientFromConfig returns a http.Client with a transport tuned for a
// small number of long-lived connections to one server.
func NewClientFromConfig(cfg HTTPClientConfig) *http.Client {
	return &http.Client{
		Transport: NewRoundTripperFromConfig(cfg),
		Timeout:   cfg.Timeout,
	}
}

func NewRoundTripperFromConfig(cfg HTTPClientConfig) http.RoundTripper {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		DisableKeepAlives:     cfg.DisableKeepAlives,
		IdleConnTimeout:       5 * time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}
}
