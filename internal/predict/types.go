package predict

import (
	"time"

	"github.com/go-sod/attrition/internal/pipeline"
)

// Request carries either one record or a batch of records. Omitted fields
// take the form defaults.
type Request struct {
	Record map[string]interface{}   `json:"record,omitempty"`
	Data   []map[string]interface{} `json:"data,omitempty"`
}

type Item struct {
	ID            string     `json:"id"`
	Label         int        `json:"label"`
	Class         string     `json:"class"`
	Probabilities [2]float64 `json:"probabilities"`
	Probability   float64    `json:"probability"`
	Summary       string     `json:"summary"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Response struct {
	Data []Item `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Index int    `json:"index"`
}

func NewItem(p *pipeline.Prediction) Item {
	return Item{
		ID:            p.ID.String(),
		Label:         int(p.Result.Label),
		Class:         p.Result.Label.String(),
		Probabilities: p.Result.Probabilities,
		Probability:   p.Result.Probability(),
		Summary:       p.Result.Summary(),
		CreatedAt:     p.CreatedAt,
	}
}
