package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sod/attrition/internal/byteutil"
	"github.com/go-sod/attrition/internal/httputil"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/pipeline"
	"github.com/go-sod/attrition/internal/record"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 1 << 20

type Predictor interface {
	Predict(ctx context.Context, e record.Employee) (*pipeline.Prediction, error)
}

func NewHandler(cfg *Config, predictor Predictor) (http.Handler, error) {
	if predictor == nil {
		return nil, fmt.Errorf("pipeline instance is not created")
	}
	return &handler{
		cfg:       cfg,
		predictor: predictor,
	}, nil
}

type handler struct {
	predictor Predictor
	cfg       *Config
}

type recordError struct {
	index int
	err   error
}

func (e *recordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.index, e.err)
}

func (e *recordError) Unwrap() error {
	return e.err
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.UseNumber()
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	records := req.Data
	if req.Record != nil {
		records = append([]map[string]interface{}{req.Record}, records...)
	}
	if len(records) == 0 {
		httputil.RespBadRequest(ctx, w, `{"error": "request contains no records"}`)
		return
	}
	if len(records) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	items := make([]Item, len(records))
	errGrp, grpCtx := errgroup.WithContext(ctx)
	if h.cfg.MaxConcurrency > 0 {
		errGrp.SetLimit(h.cfg.MaxConcurrency)
	}
	for i := range records {
		i := i
		errGrp.Go(func() error {
			e, err := record.Decode(records[i])
			if err != nil {
				return &recordError{index: i, err: err}
			}
			prediction, err := h.predictor.Predict(grpCtx, e)
			if err != nil {
				return &recordError{index: i, err: err}
			}
			items[i] = NewItem(prediction)
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		if pipeline.IsInvalidInput(err) {
			respRecordError(ctx, w, err)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "predict processing error, %v"}`, err)
		return
	}

	httputil.RespJSON(ctx, w, http.StatusOK, Response{Data: items})
}

func respRecordError(ctx context.Context, w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error(), Kind: pipeline.Kind(err)}
	var rErr *recordError
	if errors.As(err, &rErr) {
		resp.Index = rErr.index
		resp.Error = rErr.err.Error()
	}
	buf := byteutil.GetBuffer()
	defer byteutil.PutBuffer(buf)
	if encErr := json.NewEncoder(buf).Encode(resp); encErr != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, encErr)
		return
	}
	httputil.RespBadRequest(ctx, w, "%s", bytes.TrimSpace(buf.Bytes()))
}
