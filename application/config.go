package application

import (
	"fmt"
	"os"

	"github.com/vpaliy/merklelib/crypto/sign"
	"github.com/vpaliy/merklelib/utils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig is the generic type used to specify the configuration
// of any kind of merklelib executable. It contains some common
// configuration values including the file path, logger configuration,
// and config loader.
type CommonConfig struct {
	Path     string
	Logger   *LoggerConfig `toml:"logger"`
	Encoding string
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	return conf.loader
}

// Config is the configuration of a merklelib executable: the tree
// hasher to use, the root-log database location, and the signing key
// pair used to publish tree heads.
type Config struct {
	*CommonConfig
	Hasher        string `toml:"hasher"`
	DBPath        string `toml:"db_path"`
	SignKeyPath   string `toml:"sign_key_path"`
	VerifyKeyPath string `toml:"verify_key_path"`
}

var _ AppConfig = (*Config)(nil)

// NewConfig initializes a new application configuration with the given
// config file path and encoding, the tree hasher identifier, the
// root-log database path, and the signing key pair paths.
func NewConfig(file, encoding, hasherID, dbPath, signKeyPath,
	verifyKeyPath string, logConf *LoggerConfig) *Config {
	return &Config{
		CommonConfig:  NewCommonConfig(file, encoding, logConf),
		Hasher:        hasherID,
		DBPath:        dbPath,
		SignKeyPath:   signKeyPath,
		VerifyKeyPath: verifyKeyPath,
	}
}

// Load initializes the configuration from the given file
// using the given encoding.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = NewCommonConfig(file, encoding, nil)
	return conf.GetLoader().Decode(conf)
}

// Save writes the configuration to its file using its encoding.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

// GetPath returns the configuration's file path.
func (conf *Config) GetPath() string {
	return conf.Path
}

// LoadSigningPubKey loads a public signing key at the given path
// specified in the given config file.
// If there is any parsing error or the key is malformed,
// LoadSigningPubKey() returns an error with a nil key.
func LoadSigningPubKey(path, file string) (sign.PublicKey, error) {
	signPath := utils.ResolvePath(path, file)
	signPubKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	if len(signPubKey) != sign.PublicKeySize {
		return nil, fmt.Errorf("Signing public-key must be %d bytes (got %d)",
			sign.PublicKeySize, len(signPubKey))
	}
	return signPubKey, nil
}

// LoadSigningPrivKey loads a private signing key at the given path
// specified in the given config file.
func LoadSigningPrivKey(path, file string) (sign.PrivateKey, error) {
	signPath := utils.ResolvePath(path, file)
	signPrivKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	if len(signPrivKey) != sign.PrivateKeySize {
		return nil, fmt.Errorf("Signing private-key must be %d bytes (got %d)",
			sign.PrivateKeySize, len(signPrivKey))
	}
	return signPrivKey, nil
}
