// Package config loads input.Config from TOML or YAML files.
//
// Settings live in a "mouse" table. Durations are Go duration strings and
// omitted keys keep their default value:
//
//	[mouse]
//	click_timeout = "250ms"
//	click_distance = 3
//	multi_click_time = "500ms"
//	queue_size = 512
//	coalesce_moves = true
//	slow_dispatch = "1ms"
package config

import (
	"io/ioutil"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/db47h/ofs"
	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/db47h/rodent/input"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load reads the named file from fs and decodes it according to its
// extension.
func Load(fs ofs.FileSystem, name string) (input.Config, error) {
	f, err := fs.Open(name)
	if err != nil {
		return input.Config{}, errors.Wrapf(err, "load config %s", name)
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return input.Config{}, errors.Wrapf(err, "load config %s", name)
	}
	cfg, err := Decode(path.Ext(name), data)
	return cfg, errors.Wrapf(err, "load config %s", name)
}

// Decode decodes data in the format given by ext (".toml", ".yaml" or ".yml")
// on top of input.DefaultConfig. The result is validated.
func Decode(ext string, data []byte) (input.Config, error) {
	var (
		root map[string]interface{}
		err  error
	)
	switch strings.ToLower(ext) {
	case ".toml":
		var t *toml.Tree
		if t, err = toml.LoadBytes(data); err == nil {
			root = t.ToMap()
		}
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &root)
	default:
		return input.Config{}, errors.Wrap(ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return input.Config{}, err
	}

	cfg := input.DefaultConfig()
	if err = apply(&cfg, root["mouse"]); err != nil {
		return input.Config{}, err
	}
	if err = cfg.Validate(); err != nil {
		return input.Config{}, err
	}
	return cfg, nil
}

func apply(cfg *input.Config, v interface{}) error {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return errors.Errorf("mouse: expected a table, got %T", v)
	}
	for k, v := range m {
		var err error
		switch k {
		case "click_timeout":
			cfg.ClickTimeout, err = duration(v)
		case "multi_click_time":
			cfg.MultiClickTime, err = duration(v)
		case "slow_dispatch":
			cfg.SlowDispatch, err = duration(v)
		case "click_distance":
			cfg.ClickDistance, err = number(v)
		case "queue_size":
			var n float64
			n, err = number(v)
			if err == nil && n != float64(int(n)) {
				err = errors.Errorf("%v is not an integer", v)
			}
			cfg.QueueSize = int(n)
		case "coalesce_moves":
			b, ok := v.(bool)
			if !ok {
				err = errors.Errorf("expected a boolean, got %T", v)
			}
			cfg.CoalesceMoves = b
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			return errors.Wrapf(err, "mouse.%s", k)
		}
	}
	return nil
}

func duration(v interface{}) (time.Duration, error) {
	s, ok := v.(string)
	if !ok {
		return 0, errors.Errorf("expected a duration string, got %T", v)
	}
	return time.ParseDuration(s)
}

func number(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.Errorf("expected a number, got %T", v)
}

// LoadFile loads the config file at the given path, read through an
// ofs.Overlay of its directory.
func LoadFile(name string) (input.Config, error) {
	var ovl ofs.Overlay
	if err := ovl.Add(false, filepath.Dir(name)); err != nil {
		return input.Config{}, errors.Wrapf(err, "load config %s", name)
	}
	return Load(&ovl, filepath.Base(name))
}
