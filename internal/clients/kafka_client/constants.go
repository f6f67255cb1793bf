package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_REQUEST = "analysis-request" // texts waiting to be analyzed
	KAFKA_TOPIC_ANALYSIS_RESULTS = "analysis-results" // batched analysis responses
)

const (
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
	POLL_TIMEOUT  = 100 * time.Millisecond
	FLUSH_TIMEOUT = 5000 // ms
)
