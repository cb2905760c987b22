// SPDX-License-Identifier: EPL-2.0

// Package config resolves patchconv settings from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ik5/patchkit/audio"
	"github.com/ik5/patchkit/convert"
	"github.com/ik5/patchkit/patch"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvRate      = "PATCHCONV_RATE"
	EnvDepth     = "PATCHCONV_DEPTH"
	EnvChannels  = "PATCHCONV_CHANNELS"
	EnvKind      = "PATCHCONV_KIND"
	EnvOut       = "PATCHCONV_OUT"
	EnvResampler = "PATCHCONV_RESAMPLER"
)

const (
	KindDrum    = "drum"
	KindSampler = "sampler"

	ResamplerSinc  = "sinc"
	ResamplerCubic = "cubic"
)

var (
	ErrBadKind      = errors.New("kind must be drum or sampler")
	ErrBadResampler = errors.New("resampler must be sinc or cubic")
)

type Config struct {
	Request   convert.Request
	Kind      string
	OutDir    string
	Resampler string
}

// Lookup returns the value of an environment key.
type Lookup func(key string) (string, bool)

// Load reads envFile, when it exists, and overlays the process
// environment on top of it. The process environment is not modified.
func Load(envFile string) (*Config, error) {
	fileVals := map[string]string{}

	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %v: %w", envFile, err)
		}

		if vals != nil {
			fileVals = vals
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := fileVals[key]

		return v, ok
	})
}

func withDefault(lookup Lookup, key, def string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	return def
}

// FromLookup builds a Config from lookup, applying defaults for missing keys.
func FromLookup(lookup Lookup) (*Config, error) {
	c := &Config{
		Kind:      strings.ToLower(withDefault(lookup, EnvKind, KindSampler)),
		OutDir:    withDefault(lookup, EnvOut, "patch"),
		Resampler: strings.ToLower(withDefault(lookup, EnvResampler, ResamplerSinc)),
	}

	var err error
	if c.Request.Rate, err = convert.ParseRateChoice(withDefault(lookup, EnvRate, "keep")); err != nil {
		return nil, err
	}

	if c.Request.Depth, err = convert.ParseDepthChoice(withDefault(lookup, EnvDepth, "keep")); err != nil {
		return nil, err
	}

	if c.Request.Channels, err = convert.ParseChannelChoice(withDefault(lookup, EnvChannels, "keep")); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.Kind != KindDrum && c.Kind != KindSampler {
		return fmt.Errorf("%q: %w", c.Kind, ErrBadKind)
	}

	if c.Resampler != ResamplerSinc && c.Resampler != ResamplerCubic {
		return fmt.Errorf("%q: %w", c.Resampler, ErrBadResampler)
	}

	return nil
}

func (c *Config) Backend() audio.ResampleBackend {
	if c.Resampler == ResamplerCubic {
		return audio.CubicBackend{}
	}

	return audio.SincBackend{}
}

// Template is the default patch document for the configured kind.
func (c *Config) Template() patch.Template {
	if c.Kind == KindDrum {
		return patch.DrumTemplate()
	}

	return patch.SamplerTemplate()
}
