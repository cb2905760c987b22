// SPDX-License-Identifier: EPL-2.0

// Command patchconv converts a set of samples into WAV files and a patch
// document for the sampler.
//
//	patchconv -kind drum -rate 22050 -channels mono kick.wav snare-2.wav hat-3.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ik5/patchkit"
	"github.com/ik5/patchkit/convert"
	"github.com/ik5/patchkit/internal/config"
	"github.com/ik5/patchkit/patch"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

// defaultKey is where samples without any key information land in a
// multisample patch.
const defaultKey = 60

func main() {
	ctx := logger.WithContext(context.Background())

	if err := doMain(ctx); err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}

	logger.Tf(ctx, "run ok")
}

func doMain(ctx context.Context) error {
	var envFile, rate, depth, channels, kind, out, resampler string
	flag.StringVar(&envFile, "env", ".env", "Optional .env file with PATCHCONV_* settings")
	flag.StringVar(&rate, "rate", "", "Target rate: keep, 11025, 22050 or 44100")
	flag.StringVar(&depth, "depth", "", "Target bit depth: keep, 16 or 24")
	flag.StringVar(&channels, "channels", "", "Target channels: keep or mono")
	flag.StringVar(&kind, "kind", "", "Patch kind: drum or sampler")
	flag.StringVar(&out, "out", "", "Output directory")
	flag.StringVar(&resampler, "resampler", "", "Resampler: sinc or cubic")
	flag.Parse()

	conf, err := config.Load(envFile)
	if err != nil {
		return errors.Wrapf(err, "load config")
	}

	if err := applyFlags(conf, rate, depth, channels, kind, out, resampler); err != nil {
		return errors.Wrapf(err, "parse flags")
	}

	files := flag.Args()
	if len(files) == 0 {
		return errors.Errorf("no input files, usage: %v [flags] file...", filepath.Base(os.Args[0]))
	}

	logger.Tf(ctx, "patchconv kind=%v, rate=%v, depth=%v, channels=%v, resampler=%v, out=%v, files=%v",
		conf.Kind, conf.Request.Rate, conf.Request.Depth, conf.Request.Channels, conf.Resampler, conf.OutDir, len(files))

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return run(ctx, conf, files)
}

func applyFlags(conf *config.Config, rate, depth, channels, kind, out, resampler string) error {
	var err error
	if rate != "" {
		if conf.Request.Rate, err = convert.ParseRateChoice(rate); err != nil {
			return err
		}
	}

	if depth != "" {
		if conf.Request.Depth, err = convert.ParseDepthChoice(depth); err != nil {
			return err
		}
	}

	if channels != "" {
		if conf.Request.Channels, err = convert.ParseChannelChoice(channels); err != nil {
			return err
		}
	}

	if kind != "" {
		conf.Kind = kind
	}

	if out != "" {
		conf.OutDir = out
	}

	if resampler != "" {
		conf.Resampler = resampler
	}

	return conf.Validate()
}

func run(ctx context.Context, conf *config.Config, files []string) error {
	if err := os.MkdirAll(conf.OutDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %v", conf.OutDir)
	}

	reg := patchkit.DefaultRegistry()
	conv := &convert.Converter{Backend: conf.Backend()}
	used := make(map[string]int)

	var regions []patch.SampleMetadata
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "read %v", file)
		}

		loaded, err := patchkit.LoadSample(ctx, reg, filepath.Base(file), data)
		if err != nil {
			return errors.Wrapf(err, "load %v", file)
		}

		if loaded.Parsed == nil {
			logger.Wf(ctx, "no key in %v, using slot %v", file, i)
		}

		name := uniqueName(used, loaded.Name())
		key := sampleKey(conf.Kind, loaded, i)

		exported, err := patchkit.Export(ctx, conv, loaded, conf.Request, name, key)
		if err != nil {
			return errors.Wrapf(err, "convert %v", file)
		}

		dst := filepath.Join(conf.OutDir, name)
		if err := os.WriteFile(dst, exported.Data, 0o644); err != nil {
			return errors.Wrapf(err, "write %v", dst)
		}

		logger.Tf(ctx, "sample %v key=%v %vHz/%vbit/%vch %vB -> %v %v",
			file, key, loaded.Sample.Original.SampleRate, loaded.Sample.Original.BitDepth,
			loaded.Sample.Original.Channels, len(data), exported.Props.CacheKey(), len(exported.Data))

		regions = append(regions, exported.Region)
	}

	if conf.Kind == config.KindSampler {
		regions = patch.AssignKeyRanges(regions)
	}

	doc, err := patch.Build(conf.Template(), regions)
	if err != nil {
		return errors.Wrapf(err, "build patch")
	}

	dst := filepath.Join(conf.OutDir, "patch.json")
	if err := os.WriteFile(dst, doc, 0o644); err != nil {
		return errors.Wrapf(err, "write %v", dst)
	}
	logger.Tf(ctx, "patch %v with %v regions, %vB", dst, len(regions), len(doc))

	return nil
}

// sampleKey places a sample on the keyboard. Drum kits use the smpl root
// note, then a note name, then map the filename slot (or position) onto
// consecutive keys from DrumBaseKey.
func sampleKey(kind string, loaded *patchkit.Loaded, index int) int {
	if kind == config.KindDrum {
		if loaded.Metadata != nil && loaded.Metadata.RootFromSampler {
			return loaded.Metadata.MIDINote
		}

		if loaded.Parsed != nil && loaded.Parsed.IsNote {
			return loaded.Parsed.KeyOrIndex
		}

		if loaded.Parsed != nil {
			return patch.DrumSlotKey(loaded.Parsed.KeyOrIndex)
		}

		return patch.DrumSlotKey(index)
	}

	return loaded.Key(defaultKey)
}

func uniqueName(used map[string]int, base string) string {
	if base == "" {
		base = "sample"
	}

	n := used[base]
	used[base] = n + 1
	if n == 0 {
		return base + ".wav"
	}

	return fmt.Sprintf("%v (%d).wav", base, n)
}
