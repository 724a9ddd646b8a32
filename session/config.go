package session

import "time"

// Config holds session configuration. Fields are read from the
// environment by envconfig with the MINXR prefix.
type Config struct {
	ApplicationName string        `envconfig:"APP_NAME" default:"openxr-minimal"`
	Near            float32       `envconfig:"NEAR" default:"0.05"`
	Far             float32       `envconfig:"FAR" default:"100"`
	Idle            time.Duration `envconfig:"IDLE" default:"100ms"`
	Profile         string        `envconfig:"PROFILE" default:"/interaction_profiles/khr/simple_controller"`
	Grid            int           `envconfig:"GRID" default:"5"`
	GrabThreshold   float32       `envconfig:"GRAB_THRESHOLD" default:"0.9"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	return Config{
		ApplicationName: "openxr-minimal",
		Near:            0.05,
		Far:             100,
		Idle:            100 * time.Millisecond,
		Profile:         "/interaction_profiles/khr/simple_controller",
		Grid:            5,
		GrabThreshold:   0.9,
	}
}
