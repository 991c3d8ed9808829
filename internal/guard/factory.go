package guard

import (
	"github.com/BradenHooton/portfolio/internal/storage"
)

// Factory builds guards bound to individual scopes of a shared backend.
type Factory struct {
	backend storage.Backend
	cfg     Config
	opts    []Option
}

func NewFactory(backend storage.Backend, cfg Config, opts ...Option) *Factory {
	return &Factory{backend: backend, cfg: cfg, opts: opts}
}

// ForScope returns a guard over one scope. extra options are applied after the
// factory defaults.
func (f *Factory) ForScope(scope string, extra ...Option) *Guard {
	opts := make([]Option, 0, len(f.opts)+len(extra))
	opts = append(opts, f.opts...)
	opts = append(opts, extra...)
	return New(storage.Scoped(f.backend, scope), f.cfg, opts...)
}

// Config returns the effective configuration, defaults applied.
func (f *Factory) Config() Config {
	return f.cfg.withDefaults()
}
