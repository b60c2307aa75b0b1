package config

import (
	"fmt"

	"github.com/goliatone/go-qrform/pkg/encoder"
)

// Raster builds the raster encoder described by c.
func (c EncoderConfig) Raster() (*encoder.Raster, error) {
	level, err := encoder.ParseRecoveryLevel(c.Recovery)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return encoder.NewRaster(
		encoder.WithModuleSize(c.ModuleSize),
		encoder.WithQuietZone(c.QuietZone),
		encoder.WithRecoveryLevel(level),
		encoder.WithJPEGQuality(c.JPEGQuality),
	), nil
}
