package models

// Messages exchanged with the analysis worker over Kafka.
type (
	AnalysisRequest struct {
		RequestID string `json:"request_id"`
		Text      string `json:"text"`
	}

	AnalysisResponse struct {
		RequestID string          `json:"request_id"`
		Result    *AnalysisResult `json:"result,omitempty"`
		Error     string          `json:"error,omitempty"`
	}
)

// AnalysisBatchResponse is the payload of one message on the results topic.
type AnalysisBatchResponse []AnalysisResponse
