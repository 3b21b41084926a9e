package console

import (
	"maps"
	"strings"

	"github.com/RodCaba/fp-orchestrator/wire"
)

// SensorType identifies one of the rig's fixed sensor slots.
type SensorType string

const (
	SensorInertial SensorType = "inertial"
	SensorAudio    SensorType = "audio"
	SensorRFID     SensorType = "rfid"
)

// SensorTypes returns the fixed sensor set in display order.
func SensorTypes() []SensorType {
	return []SensorType{SensorInertial, SensorAudio, SensorRFID}
}

// ParseSensorType maps wire names onto sensor slots. "imu" is accepted as a
// legacy name for the inertial sensor.
func ParseSensorType(name string) (SensorType, error) {
	switch strings.ToLower(name) {
	case "inertial", "imu":
		return SensorInertial, nil
	case "audio":
		return SensorAudio, nil
	case "rfid":
		return SensorRFID, nil
	}
	return "", &UnknownSensorError{Name: name}
}

// SensorStatus is the tracked state of one sensor slot.
type SensorStatus struct {
	Type      SensorType
	Connected bool
	Metrics   map[string]any
}

// Sensors tracks connectivity and counters for the fixed sensor set. The
// set is fixed at construction; updates for unknown sensors are rejected
// rather than creating new slots. Callers serialize access.
type Sensors struct {
	slots map[SensorType]*SensorStatus
}

func NewSensors() *Sensors {
	slots := make(map[SensorType]*SensorStatus)
	for _, typ := range SensorTypes() {
		slots[typ] = &SensorStatus{
			Type:    typ,
			Metrics: map[string]any{},
		}
	}
	return &Sensors{slots: slots}
}

// Apply merges a sensor_status push into the matching slot. Only keys
// present in the payload overwrite existing metrics, so a connectivity flip
// does not erase previously reported counters.
func (s *Sensors) Apply(status *wire.SensorStatus) error {
	typ, err := ParseSensorType(status.SensorType)
	if err != nil {
		return err
	}

	slot := s.slots[typ]
	slot.Connected = status.Status == "connected"
	for key, value := range status.Data {
		slot.Metrics[key] = value
	}
	return nil
}

// Status returns a copy of one sensor slot.
func (s *Sensors) Status(typ SensorType) (SensorStatus, bool) {
	slot, ok := s.slots[typ]
	if !ok {
		return SensorStatus{}, false
	}
	return SensorStatus{
		Type:      slot.Type,
		Connected: slot.Connected,
		Metrics:   maps.Clone(slot.Metrics),
	}, true
}

// All returns copies of every sensor slot in display order.
func (s *Sensors) All() []SensorStatus {
	statuses := make([]SensorStatus, 0, len(s.slots))
	for _, typ := range SensorTypes() {
		status, _ := s.Status(typ)
		statuses = append(statuses, status)
	}
	return statuses
}
