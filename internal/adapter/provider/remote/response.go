package remote

// apiPredictRequest is the body of POST /predict.
type apiPredictRequest struct {
	Text          string `json:"text"`
	Checkpoint    string `json:"checkpoint"`
	PredSentiment bool   `json:"pred_sentiment"`
}

// apiPrediction mirrors the result dict the ATEPC extractor produces for one sentence.
type apiPrediction struct {
	Sentence   string    `json:"sentence"`
	Tokens     []string  `json:"tokens"`
	Aspect     []string  `json:"aspect"`
	Position   [][]int   `json:"position"`
	Sentiment  []string  `json:"sentiment"`
	Confidence []float64 `json:"confidence"`
}

// apiCheckpoint is a single entry of GET /checkpoints.
type apiCheckpoint struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// apiError is the error body returned by the model server on 4xx/5xx.
type apiError struct {
	Detail string `json:"detail"`
}
