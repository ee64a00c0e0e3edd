package kafka

import (
	"academy-dashboard/db"
	"fmt"
)

// StoreDLQMessage persists a failed message so an operator can replay it
// once the broker recovers.
func StoreDLQMessage(topic, key string, value []byte, errorMsg string) error {
	if db.DB == nil {
		return fmt.Errorf("database not initialized, cannot store DLQ message")
	}

	_, err := db.DB.Exec(
		"INSERT INTO dlq_messages (topic, key, value, error_message, status) VALUES ($1, $2, $3, $4, 'FAILED')",
		topic, key, string(value), errorMsg)
	if err != nil {
		return fmt.Errorf("error storing DLQ message: %w", err)
	}
	return nil
}

// PendingDLQCount returns how many failed messages are waiting for replay
func PendingDLQCount() (int, error) {
	if db.DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	var count int
	err := db.DB.QueryRow("SELECT COUNT(*) FROM dlq_messages WHERE status = 'FAILED'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting DLQ messages: %w", err)
	}
	return count, nil
}
