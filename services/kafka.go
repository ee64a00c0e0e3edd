package services

import (
	"academy-dashboard/services/kafka"
)

func InitProducer() {
	kafka.InitProducer()
}

func Publish(topic, key string, value interface{}) error {
	return kafka.Publish(topic, key, value)
}

func IsConnected() bool {
	return kafka.IsConnected()
}

func Close() error {
	return kafka.Close()
}

func StartConsumer() {
	kafka.StartConsumer()
}

func StopConsumer() {
	kafka.StopConsumer()
}

func IsConsumerRunning() bool {
	return kafka.IsConsumerRunning()
}

func RegisterEmailProcessor(fn func(map[string]interface{}) error) {
	kafka.RegisterEmailProcessor(fn)
}

func StoreDLQMessage(topic, key string, value []byte, errorMsg string) error {
	return kafka.StoreDLQMessage(topic, key, value, errorMsg)
}

func PendingDLQCount() (int, error) {
	return kafka.PendingDLQCount()
}
