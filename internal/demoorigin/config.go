package demoorigin

// Config holds configuration for the demo origin server.
type Config struct {
	// Port is the port on which the origin listens.
	Port int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port: 9999,
	}
}
