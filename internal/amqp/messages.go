package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"homecal/internal/core"
)

// ChangeMessage announces a committed calendar write. Consumers fetch the
// record itself from the store if they need more than the id.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Operation string    `json:"operation"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(c core.Change) *ChangeMessage {
	return &ChangeMessage{
		Entity:    string(c.Entity),
		Operation: string(c.Operation),
		ID:        c.ID,
		Timestamp: time.Now(),
	}
}

// Change returns the core value carried by the message.
func (m *ChangeMessage) Change() core.Change {
	return core.Change{
		Entity:    core.ChangeEntity(m.Entity),
		Operation: core.ChangeOperation(m.Operation),
		ID:        m.ID,
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects ones missing the
// entity, operation or id.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" || msg.Operation == "" || msg.ID == 0 {
		return nil, fmt.Errorf("incomplete change message: %s", data)
	}
	return &msg, nil
}
