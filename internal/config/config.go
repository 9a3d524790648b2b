// The config package loads the manifest that describes a package to the
// commands: where its bytes are, which version layout it uses, and its name
// and export tables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/internal/log"
	"github.com/ueforge/unmaterial/loader"
)

// EnvPrefix prefixes the environment variables that override manifest keys,
// such as UMAT_GAME or UMAT_LOG_LEVEL.
const EnvPrefix = "UMAT"

// Export is one entry of the export table.
type Export struct {
	Type   string `mapstructure:"type"`
	Name   string `mapstructure:"name"`
	Offset int64  `mapstructure:"offset"`
	Length int64  `mapstructure:"length"`
}

// Manifest describes one package.
type Manifest struct {
	// Data is the path of the package file. A relative path is relative to
	// the manifest.
	Data string `mapstructure:"data"`
	// SideFile is the path of the file holding separately stored payloads.
	SideFile string `mapstructure:"side_file"`

	Game        string `mapstructure:"game"`
	Ver         int    `mapstructure:"ver"`
	LicenseeVer int    `mapstructure:"licensee_ver"`

	Names   []string `mapstructure:"names"`
	Exports []Export `mapstructure:"exports"`

	Workers     int `mapstructure:"workers"`
	MaxArrayLen int `mapstructure:"max_array_len"`

	Log log.Config `mapstructure:"log"`

	dir string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("game", "ue3")
	v.SetDefault("max_array_len", archive.DefaultMaxArrayLen)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	// Unmarshal only sees environment overrides of keys viper knows about.
	for _, key := range []string{"data", "side_file", "ver", "licensee_ver", "workers"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the manifest at path. The file type is inferred from the
// extension (.yaml, .yml, .json or .toml).
func Load(path string) (*Manifest, error) {
	v := newViper()
	v.SetConfigFile(path)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json":
		v.SetConfigType("json")
	case ".toml":
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}
	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, errors.Wrapf(err, "decode manifest %s", path)
	}
	m.dir = filepath.Dir(path)
	return &m, m.validate()
}

func (m *Manifest) validate() error {
	if m.Data == "" {
		return errors.New("manifest names no data file")
	}
	if _, err := m.Version(); err != nil {
		return err
	}
	for i, e := range m.Exports {
		if e.Type == "" {
			return errors.Newf("export %d has no type", i)
		}
		if e.Offset < 0 || e.Length < 0 {
			return errors.Newf("export %d has range %d+%d", i, e.Offset, e.Length)
		}
	}
	return nil
}

// Version returns the version triple of the manifest.
func (m *Manifest) Version() (archive.Version, error) {
	game, ok := archive.ParseGame(m.Game)
	if !ok {
		return archive.Version{}, errors.Newf("unknown game %q", m.Game)
	}
	return archive.Version{Game: game, Ver: m.Ver, LicenseeVer: m.LicenseeVer}, nil
}

func (m *Manifest) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// DataPath returns the path of the package file.
func (m *Manifest) DataPath() string {
	return m.path(m.Data)
}

// SidePath returns the path of the side file, or an empty string.
func (m *Manifest) SidePath() string {
	return m.path(m.SideFile)
}

// Package reads the package file and returns the package it describes.
func (m *Manifest) Package() (*loader.Package, error) {
	v, err := m.Version()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(m.DataPath())
	if err != nil {
		return nil, err
	}
	pkg := &loader.Package{
		Data:    data,
		Version: v,
		Names:   archive.Names(m.Names),
		Exports: make([]loader.Export, len(m.Exports)),
	}
	for i, e := range m.Exports {
		pkg.Exports[i] = loader.Export(e)
	}
	return pkg, nil
}

// Options returns the decode options of the manifest.
func (m *Manifest) Options() []loader.Option {
	var opts []loader.Option
	if m.Workers > 0 {
		opts = append(opts, loader.WithWorkers(m.Workers))
	}
	if m.MaxArrayLen > 0 {
		opts = append(opts, loader.WithMaxArrayLen(m.MaxArrayLen))
	}
	return opts
}
