package config

// Embedded per-role defaults. Keys are firmware roles, values are JSON
// documents with one object per config section.
var embeddedConfigs = map[string]string{
	"pilot": `{
		"pipeline": {
			"sample_rate": 16000,
			"block_len": 11200,
			"buffers": 3,
			"threshold": 0.5,
			"go_pin": 7,
			"stop_pin": 6
		},
		"heartbeat": {
			"freq_hz": 4,
			"red_pin": 16,
			"green_pin": 17,
			"blue_pin": 18
		}
	}`,
	"rover": `{
		"rover": {
			"poll_ms": 5,
			"go_speed": 20,
			"valid_pin": 4,
			"motion_pin": 5,
			"status_pin": 10
		},
		"heartbeat": {
			"freq_hz": 4,
			"red_pin": 16,
			"green_pin": 17,
			"blue_pin": 18
		}
	}`,
}
