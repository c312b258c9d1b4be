package config

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"voicedrive-go/bus"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(role string) (string, bool) {
	s, ok := embeddedConfigs[role]
	return s, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

// Service publishes the embedded configuration for one firmware role as
// retained bus messages, one message per top-level section: the pilot's
// pipeline geometry, the rover's pins and speeds, heartbeat timing.
type Service struct {
	Name string
	Role string
}

func NewService(role string) *Service {
	return &Service{Name: serviceName, Role: role}
}

// publishConfig parses the embedded JSON for the role and publishes every
// top-level section retained under {config, <section>}.
func (s *Service) publishConfig(conn *bus.Connection) error {
	raw, ok := EmbeddedConfigLookup(s.Role)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for role: " + s.Role)
	}
	if !gjson.Valid(raw) {
		return errors.New("embedded config is not valid JSON")
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return errors.New("embedded config is not a JSON object")
	}

	var perr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		section, ok := value.Value().(map[string]any)
		if !ok {
			perr = errors.New("config section is not an object: " + key.String())
			return false
		}
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, key.String()),
			Payload:  section,
			Retained: true,
		})
		return true
	})
	return perr
}

// Start launches the config publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(conn); err != nil {
			println("Error: config:", err.Error())
		}
	}()
}
