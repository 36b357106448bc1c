package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpaliy/merklelib/crypto/hasher"
	"github.com/vpaliy/merklelib/crypto/sign"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")

	conf := NewConfig(file, "toml", hasher.SHA256Hasher, "merkle.db",
		"merkle.sign", "merkle.verify",
		&LoggerConfig{Environment: "development"})
	require.NoError(t, conf.Save())

	loaded := new(Config)
	require.NoError(t, loaded.Load(file, "toml"))
	assert.Equal(t, conf.Hasher, loaded.Hasher)
	assert.Equal(t, conf.DBPath, loaded.DBPath)
	assert.Equal(t, conf.SignKeyPath, loaded.SignKeyPath)
	assert.Equal(t, conf.VerifyKeyPath, loaded.VerifyKeyPath)
	assert.Equal(t, "development", loaded.Logger.Environment)
}

func TestConfigSaveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	conf := NewConfig(file, "toml", hasher.SHA256Hasher, "merkle.db",
		"merkle.sign", "merkle.verify", nil)
	require.NoError(t, conf.Save())
	assert.Error(t, conf.Save())
}

func TestConfigLoadMissingFile(t *testing.T) {
	conf := new(Config)
	assert.Error(t, conf.Load(filepath.Join(t.TempDir(), "missing.toml"), "toml"))
}

func TestLoadSigningKeys(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "config.toml")

	sk, err := sign.GenerateKey(nil)
	require.NoError(t, err)
	pk, ok := sk.Public()
	require.True(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "merkle.sign"), sk, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merkle.verify"), pk, 0644))

	loadedSK, err := LoadSigningPrivKey("merkle.sign", confPath)
	require.NoError(t, err)
	assert.Equal(t, []byte(sk), []byte(loadedSK))

	loadedPK, err := LoadSigningPubKey("merkle.verify", confPath)
	require.NoError(t, err)
	assert.Equal(t, []byte(pk), []byte(loadedPK))

	// a truncated key must be rejected
	require.NoError(t, os.WriteFile(filepath.Join(dir, "short.sign"), sk[:16], 0600))
	_, err = LoadSigningPrivKey("short.sign", confPath)
	assert.Error(t, err)
	_, err = LoadSigningPubKey("does-not-exist", confPath)
	assert.Error(t, err)
}
