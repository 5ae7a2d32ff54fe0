package dragdrop

import "encoding/json"

// PayloadType tags drag payloads that cross a serialization boundary.
const PayloadType = "timeline-event"

// Payload is the wire format for a drag crossing component boundaries.
type Payload struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
	DayID   string `json:"dayId,omitempty"`
	Index   *int   `json:"index,omitempty"`
}

// EncodePayload serializes a drag payload. Index below zero is omitted.
func EncodePayload(eventID, dayID string, index int) []byte {
	p := Payload{Type: PayloadType, EventID: eventID, DayID: dayID}
	if index >= 0 {
		p.Index = &index
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return data
}

// DecodePayload parses a drag payload. Malformed JSON, a wrong type tag, or
// a missing event ID yield (zero, false); drop handlers ignore such drags.
func DecodePayload(data []byte) (Payload, bool) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, false
	}
	if p.Type != PayloadType || p.EventID == "" {
		return Payload{}, false
	}
	return p, true
}
