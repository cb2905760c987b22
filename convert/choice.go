// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// RateChoice selects one of the standard target rates. The numeric values
// match the indexes used by the patch editor.
type RateChoice int

const (
	RateKeep RateChoice = iota
	Rate11025
	Rate22050
	Rate44100
)

var standardRates = [...]int{RateKeep: 0, Rate11025: 11025, Rate22050: 22050, Rate44100: 44100}

// Hz is the target rate, or 0 for RateKeep and unknown choices.
func (c RateChoice) Hz() int {
	if c < 0 || int(c) >= len(standardRates) {
		return 0
	}

	return standardRates[c]
}

func (c RateChoice) String() string {
	if c == RateKeep {
		return "keep"
	}

	return strconv.Itoa(c.Hz())
}

// ParseRateChoice accepts "keep", an index ("0".."3") or a rate in Hz.
func ParseRateChoice(s string) (RateChoice, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "keep" {
		return RateKeep, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return RateKeep, fmt.Errorf("rate %q: %w", s, ErrInvalidChoice)
	}

	if n >= 0 && n < len(standardRates) {
		return RateChoice(n), nil
	}

	for i, hz := range standardRates {
		if i > 0 && hz == n {
			return RateChoice(i), nil
		}
	}

	return RateKeep, fmt.Errorf("rate %q: %w", s, ErrInvalidChoice)
}

type DepthChoice string

const (
	DepthKeep DepthChoice = "keep"
	Depth16   DepthChoice = "16"
	Depth24   DepthChoice = "24"
)

func ParseDepthChoice(s string) (DepthChoice, error) {
	switch c := DepthChoice(strings.ToLower(strings.TrimSpace(s))); c {
	case "", DepthKeep:
		return DepthKeep, nil
	case Depth16, Depth24:
		return c, nil
	}

	return DepthKeep, fmt.Errorf("depth %q: %w", s, ErrInvalidChoice)
}

type ChannelChoice string

const (
	ChannelsKeep ChannelChoice = "keep"
	ChannelsMono ChannelChoice = "mono"
)

func ParseChannelChoice(s string) (ChannelChoice, error) {
	switch c := ChannelChoice(strings.ToLower(strings.TrimSpace(s))); c {
	case "", ChannelsKeep:
		return ChannelsKeep, nil
	case ChannelsMono:
		return c, nil
	}

	return ChannelsKeep, fmt.Errorf("channels %q: %w", s, ErrInvalidChoice)
}

// Request is what the user asked for. The zero value keeps everything.
type Request struct {
	Rate     RateChoice
	Depth    DepthChoice
	Channels ChannelChoice
}
