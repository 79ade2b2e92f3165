// Package config reads the YAML configuration of the chainmap CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/hashmap"
	"github.com/graph-guard/chainmap/pkg/vector"
	plog "github.com/phuslu/log"
	yaml "gopkg.in/yaml.v3"
)

const DefaultFile = "chainmap.yaml"

type Config struct {
	FilePath string   `yaml:"-"`
	Map      Capacity `yaml:"map"`
	Bucket   Capacity `yaml:"bucket"`
	Memory   Memory   `yaml:"memory"`
	Log      Log      `yaml:"log"`
}

// Capacity is the capacity management policy of a container.
type Capacity struct {
	InitialCapacity int     `yaml:"initial_capacity"`
	GrowthFactor    int     `yaml:"growth_factor"`
	MaxLoadFactor   float64 `yaml:"max_load_factor"`
	MinLoadFactor   float64 `yaml:"min_load_factor"`
}

type Memory struct {
	// LimitSlots limits the number of slots the containers may reserve.
	// 0 means unlimited.
	LimitSlots int64 `yaml:"limit_slots"`
}

type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Default returns the configuration used for missing fields.
func Default() *Config {
	m, b := hashmap.DefaultConfig(), vector.DefaultConfig()
	return &Config{
		Map: Capacity{
			InitialCapacity: m.InitialCapacity,
			GrowthFactor:    m.GrowthFactor,
			MaxLoadFactor:   m.MaxLoadFactor,
			MinLoadFactor:   m.MinLoadFactor,
		},
		Bucket: Capacity{
			InitialCapacity: b.InitialCapacity,
			GrowthFactor:    b.GrowthFactor,
			MaxLoadFactor:   b.MaxLoadFactor,
			MinLoadFactor:   b.MinLoadFactor,
		},
		Log: Log{Level: "info", Console: true},
	}
}

// Read reads the configuration file at path from filesystem.
func Read(filesystem fs.FS, path string) (*Config, error) {
	f, err := filesystem.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ErrorMissing{FilePath: path}
	} else if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	conf := Default()
	conf.FilePath = path

	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "syntax",
			Message:  err.Error(),
		}
	}

	if err := conf.HashmapConfig().Validate(); err != nil {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "map",
			Message:  err.Error(),
		}
	}
	if conf.Memory.LimitSlots < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "memory.limit_slots",
			Message:  "must not be negative",
		}
	}
	if conf.Log.Level == "" {
		return nil, &ErrorMissing{
			FilePath: path,
			Feature:  "log.level",
		}
	}
	if _, ok := levels[strings.ToLower(conf.Log.Level)]; !ok {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "log.level",
			Message:  fmt.Sprintf("unsupported level %q", conf.Log.Level),
		}
	}
	return conf, nil
}

var levels = map[string]plog.Level{
	"trace": plog.TraceLevel,
	"debug": plog.DebugLevel,
	"info":  plog.InfoLevel,
	"warn":  plog.WarnLevel,
	"error": plog.ErrorLevel,
}

// VectorConfig returns the bucket vector policy.
func (c *Config) VectorConfig() vector.Config {
	return vector.Config{
		InitialCapacity: c.Bucket.InitialCapacity,
		GrowthFactor:    c.Bucket.GrowthFactor,
		MaxLoadFactor:   c.Bucket.MaxLoadFactor,
		MinLoadFactor:   c.Bucket.MinLoadFactor,
	}
}

// HashmapConfig returns the map policy including the bucket policy.
func (c *Config) HashmapConfig() hashmap.Config {
	return hashmap.Config{
		InitialCapacity: c.Map.InitialCapacity,
		GrowthFactor:    c.Map.GrowthFactor,
		MaxLoadFactor:   c.Map.MaxLoadFactor,
		MinLoadFactor:   c.Map.MinLoadFactor,
		Bucket:          c.VectorConfig(),
	}
}

// Allocator returns alloc.Heap if no memory limit is set,
// otherwise returns a new *alloc.Limited.
func (c *Config) Allocator() alloc.Allocator {
	if c.Memory.LimitSlots < 1 {
		return alloc.Heap{}
	}
	return alloc.NewLimited(c.Memory.LimitSlots)
}

// Logger returns a logger writing to w.
func (c *Config) Logger(w io.Writer) plog.Logger {
	l := plog.Logger{
		Level:      levels[strings.ToLower(c.Log.Level)],
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &plog.IOWriter{Writer: w},
	}
	if c.Log.Console {
		l.Writer = &plog.ConsoleWriter{Writer: w}
	}
	return l
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	if e.Feature == "" {
		return "missing " + e.FilePath
	}
	return "missing " + e.Feature + " in " + e.FilePath
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	return "illegal " + e.Feature + " in " + e.FilePath + ": " + e.Message
}
