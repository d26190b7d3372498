package monitor

// Config holds accumulator settings.
//   - Alpha: EMA factor for the displayed CPU usage [0..1]; 0 disables smoothing.
type Config struct {
	Alpha float64
}

// _defaultConfig returns a Config with smoothing disabled.
func _defaultConfig() *Config {
	return &Config{
		Alpha: 0.0,
	}
}

// Result is what one snapshot contributes to the display.
type Result struct {
	CPUUsage float64 // smoothed when Alpha > 0, in [0,1]
	MemUsage float64 // used/total, in [0,1]
	LoadOne  float64
	Tasks    int
	Active   int
}
