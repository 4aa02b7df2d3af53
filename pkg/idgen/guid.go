// Package idgen generates identifiers for the id extension column types.
package idgen

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adisonshadow/adb/pkg/meta"
)

var (
	// ErrNameRequired is returned when a v5 GUID is requested without a name
	ErrNameRequired = errors.New("idgen: v5 guid requires a name")

	// ErrInvalidConfig is returned for configs outside the allowed bounds
	ErrInvalidConfig = errors.New("idgen: invalid config")
)

// GUIDGenerator produces GUIDs for a guid id column
type GUIDGenerator struct {
	version   meta.GUIDVersion
	format    meta.GUIDFormat
	namespace uuid.UUID
}

// GUIDOption configures a GUIDGenerator
type GUIDOption func(*GUIDGenerator)

// WithNamespace sets the namespace of v5 GUIDs. The default is the URL
// namespace.
func WithNamespace(ns uuid.UUID) GUIDOption {
	return func(g *GUIDGenerator) {
		g.namespace = ns
	}
}

// NewGUIDGenerator creates a generator for cfg. Empty version and format
// default to v4 and the canonical form.
func NewGUIDGenerator(cfg meta.GUIDIDConfig, opts ...GUIDOption) (*GUIDGenerator, error) {
	g := &GUIDGenerator{
		version:   cfg.Version,
		format:    cfg.Format,
		namespace: uuid.NameSpaceURL,
	}
	if g.version == "" {
		g.version = meta.GUIDv4
	}
	if g.format == "" {
		g.format = meta.GUIDFormatDefault
	}
	if !g.version.Valid() {
		return nil, fmt.Errorf("%w: guid version %q", ErrInvalidConfig, cfg.Version)
	}
	if !g.format.Valid() {
		return nil, fmt.Errorf("%w: guid format %q", ErrInvalidConfig, cfg.Format)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// UUID returns a new UUID of the configured version. name is only used by v5.
func (g *GUIDGenerator) UUID(name string) (uuid.UUID, error) {
	switch g.version {
	case meta.GUIDv1:
		return uuid.NewUUID()
	case meta.GUIDv5:
		if name == "" {
			return uuid.Nil, ErrNameRequired
		}
		return uuid.NewSHA1(g.namespace, []byte(name)), nil
	default:
		return uuid.NewRandom()
	}
}

// Next returns a new GUID in the configured format: a string, or a
// 16-byte slice for the binary format.
func (g *GUIDGenerator) Next(name string) (any, error) {
	u, err := g.UUID(name)
	if err != nil {
		return nil, err
	}
	return FormatGUID(u, g.format), nil
}

// FormatGUID encodes u in format
func FormatGUID(u uuid.UUID, format meta.GUIDFormat) any {
	switch format {
	case meta.GUIDFormatBraced:
		return "{" + u.String() + "}"
	case meta.GUIDFormatURN:
		return u.URN()
	case meta.GUIDFormatBinary:
		b := make([]byte, len(u))
		copy(b, u[:])
		return b
	default:
		return u.String()
	}
}
