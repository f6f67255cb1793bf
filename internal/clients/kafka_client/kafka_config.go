package kafka_client

import "github.com/spacesedan/sentilens/config"

type KafkaConfig struct {
	Broker       string
	GroupID      string
	RequestTopic string
	ResultsTopic string
}

func NewKafkaConfig(cfg config.KafkaConfig) KafkaConfig {
	kc := KafkaConfig{
		Broker:       cfg.Broker,
		GroupID:      cfg.GroupID,
		RequestTopic: cfg.RequestTopic,
		ResultsTopic: cfg.ResultsTopic,
	}
	if kc.RequestTopic == "" {
		kc.RequestTopic = KAFKA_TOPIC_ANALYSIS_REQUEST
	}
	if kc.ResultsTopic == "" {
		kc.ResultsTopic = KAFKA_TOPIC_ANALYSIS_RESULTS
	}
	return kc
}
