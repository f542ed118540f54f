package predictor

type AlgType string

const (
	AlgTypeForest   AlgType = "FOREST"
	AlgTypeLogistic AlgType = "LOGISTIC"
)

type Config struct {
	Type       AlgType `envconfig:"ATTRITION_PREDICTOR_TYPE" default:"FOREST"`
	ModelName  string  `envconfig:"ATTRITION_MODEL_NAME" default:"model_rf.json"`
	SchemaName string  `envconfig:"ATTRITION_SCHEMA_NAME" default:"model_columns.json"`
}

func (c Config) PredictorType() AlgType {
	return c.Type
}
