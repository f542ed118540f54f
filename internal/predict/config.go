package predict

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"ATTRITION_PREDICT_REQUEST_TIMEOUT" default:"30s"`
	MaxDataItemsLen int           `envconfig:"ATTRITION_PREDICT_MAX_DATA_ITEMS_LEN" default:"100"`
	MaxConcurrency  int           `envconfig:"ATTRITION_PREDICT_MAX_CONCURRENCY" default:"8"`
}
