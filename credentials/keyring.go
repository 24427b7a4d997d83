package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"github.com/kbukum/devportal/component"
)

const defaultKeyringService = "devportal"

// Keyring backends.
const (
	BackendAuto   = "auto"
	BackendFile   = "file"
	BackendSystem = "system"
)

// KeyringConfig configures the OS keyring provider.
type KeyringConfig struct {
	// ServiceName scopes the stored items; default "devportal".
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// Backend is auto, file or system; default auto.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// FileDir holds the encrypted file backend; default <user config dir>/devportal/keyring.
	FileDir string `yaml:"file_dir" mapstructure:"file_dir"`
	// Password unlocks the file backend without prompting.
	Password string `yaml:"-" mapstructure:"password"`
}

// ApplyDefaults fills unset fields.
func (c *KeyringConfig) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = defaultKeyringService
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFile, BackendSystem:
	case "os", "native":
		c.Backend = BackendSystem
	default:
		c.Backend = BackendAuto
	}
	if c.FileDir == "" {
		c.FileDir = defaultFileDir(c.ServiceName)
	}
}

func defaultFileDir(service string) string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, service, "keyring")
	}
	return filepath.Join(os.TempDir(), service, "keyring")
}

// keyringConfig builds the library configuration. Headless Linux has no
// secret service, so auto mode falls back to the file backend there.
func (c KeyringConfig) keyringConfig(goos, dbusAddr string) keyring.Config {
	cfg := keyring.Config{ServiceName: c.ServiceName}
	if c.Backend == BackendSystem {
		return cfg
	}
	cfg.FileDir = c.FileDir
	cfg.FilePasswordFunc = c.filePassword
	if c.Backend == BackendFile || (goos == "linux" && strings.TrimSpace(dbusAddr) == "") {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

func (c KeyringConfig) filePassword(prompt string) (string, error) {
	if c.Password != "" {
		return c.Password, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// Opener opens a keyring; tests substitute keyring.NewArrayKeyring.
type Opener func(keyring.Config) (keyring.Keyring, error)

// Keyring serves secrets from the OS keyring. The keyring is opened on
// first use, so constructing one never prompts.
type Keyring struct {
	*component.BaseLazyComponent

	cfg  KeyringConfig
	open Opener
	goos string

	mu   sync.RWMutex
	ring keyring.Keyring
}

var (
	_ Provider            = (*Keyring)(nil)
	_ component.Component = (*Keyring)(nil)
)

// NewKeyring creates a lazily opened keyring provider.
func NewKeyring(cfg KeyringConfig) *Keyring {
	return NewKeyringWithOpener(cfg, keyring.Open)
}

// NewKeyringWithOpener creates a keyring provider that opens through open.
func NewKeyringWithOpener(cfg KeyringConfig, open Opener) *Keyring {
	cfg.ApplyDefaults()
	k := &Keyring{cfg: cfg, open: open, goos: runtime.GOOS}
	k.BaseLazyComponent = component.NewBaseLazyComponent("credentials-keyring", k.initialize).
		WithCloser(k.close).
		WithHealthCheck(k.ping)
	return k
}

func (k *Keyring) initialize(context.Context) error {
	ring, err := k.open(k.cfg.keyringConfig(k.goos, os.Getenv("DBUS_SESSION_BUS_ADDRESS")))
	if err != nil {
		return fmt.Errorf("open keyring %q: %w", k.cfg.ServiceName, err)
	}
	k.mu.Lock()
	k.ring = ring
	k.mu.Unlock()
	return nil
}

func (k *Keyring) close() error {
	k.mu.Lock()
	k.ring = nil
	k.mu.Unlock()
	return nil
}

// ping lists the stored keys to check that the backend answers.
func (k *Keyring) ping(ctx context.Context) error {
	_, err := k.Keys(ctx)
	return err
}

func (k *Keyring) get(ctx context.Context) (keyring.Keyring, error) {
	if err := k.Initialize(ctx); err != nil {
		return nil, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.ring == nil {
		return nil, fmt.Errorf("keyring %q is closed", k.cfg.ServiceName)
	}
	return k.ring, nil
}

// Secret implements Provider.
func (k *Keyring) Secret(ctx context.Context, name string) (string, error) {
	ring, err := k.get(ctx)
	if err != nil {
		return "", err
	}
	item, err := ring.Get(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s (keyring %s)", ErrNotFound, name, k.cfg.ServiceName)
	}
	if err != nil {
		return "", fmt.Errorf("read %s from keyring: %w", name, err)
	}
	return string(item.Data), nil
}

// Set stores a secret.
func (k *Keyring) Set(ctx context.Context, name, value string) error {
	ring, err := k.get(ctx)
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:         name,
		Data:        []byte(value),
		Label:       k.cfg.ServiceName + " " + name,
		Description: "devportal credential",
	})
}

// Remove deletes a secret. Removing a missing secret is not an error.
func (k *Keyring) Remove(ctx context.Context, name string) error {
	ring, err := k.get(ctx)
	if err != nil {
		return err
	}
	if err := ring.Remove(name); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("remove %s from keyring: %w", name, err)
	}
	return nil
}

// Keys lists the stored secret names.
func (k *Keyring) Keys(ctx context.Context) ([]string, error) {
	ring, err := k.get(ctx)
	if err != nil {
		return nil, err
	}
	return ring.Keys()
}

// Describe implements component.Describable.
func (k *Keyring) Describe() component.Description {
	return component.Description{
		Name:    k.Name(),
		Type:    "credentials",
		Details: fmt.Sprintf("service=%s backend=%s", k.cfg.ServiceName, k.cfg.Backend),
	}
}
