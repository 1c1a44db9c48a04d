package focus

// DefaultShiftCorrection is the calibration constant applied to the lens
// shift delta before taking its arctangent. It was fitted by eye and is not
// derived from sensor or lens geometry.
const DefaultShiftCorrection = 0.915

// Config holds the engine preferences.
type Config struct {
	// UpdateOnlyActive limits Tick to the scene's active camera. When false
	// every camera with a lock record is recomputed.
	UpdateOnlyActive bool `yaml:"update_only_active"`
	// AutoReset disables every other camera's lock whenever one is enabled.
	AutoReset bool `yaml:"auto_reset"`
	// StrictTarget rejects enabling a lock that has no target instead of
	// accepting it as an inert lock.
	StrictTarget bool `yaml:"strict_target"`
	// ShiftCorrection is k in rotation = baseline - atan(k * shiftDelta).
	ShiftCorrection float64 `yaml:"shift_correction"`
}

// DefaultConfig returns the stock preferences.
func DefaultConfig() Config {
	return Config{
		UpdateOnlyActive: true,
		AutoReset:        true,
		StrictTarget:     false,
		ShiftCorrection:  DefaultShiftCorrection,
	}
}

// AllCamerasConfig recomputes every locked camera and lets several locks run
// at once.
func AllCamerasConfig() Config {
	cfg := DefaultConfig()
	cfg.UpdateOnlyActive = false
	cfg.AutoReset = false
	return cfg
}

func (c Config) withDefaults() Config {
	if c.ShiftCorrection == 0 {
		c.ShiftCorrection = DefaultShiftCorrection
	}
	return c
}
