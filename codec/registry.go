// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package codec

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknownCodec is returned by Registry.Get for unregistered names.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Registry maps format names to codec constructors.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]NewCodecFunc
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]NewCodecFunc)}
}

// Register adds or replaces the codec called name.
func (r *Registry) Register(name string, f NewCodecFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[name] = f
}

func (r *Registry) Get(name string) (NewCodecFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.codecs[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
	return f, nil
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
