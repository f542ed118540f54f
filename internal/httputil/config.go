package httputil

import "time"

type HTTPClientConfig struct {
	Timeout           time.Duration `envconfig:"ATTRITION_CLIENT_TIMEOUT" default:"30s"`
	DisableKeepAlives bool          `envconfig:"ATTRITION_CLIENT_DISABLE_KEEPALIVES" default:"false"`
}
