package toolbar

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dixieflatline76/Shelf/util/log"
)

// Registry is the append-only catalogue of helper modules.
// Helpers are registered by the composition root during start-up; once the
// registry is sealed it is only read, so it needs no locking.
type Registry struct {
	helpers []Helper
	byExt   map[string]Helper
	sealed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		helpers: make([]Helper, 0),
		byExt:   make(map[string]Helper),
	}
}

// Register adds a helper. Registering the same instance twice is a no-op.
// A helper whose namespace extension is already taken is skipped and
// ErrRegistrationConflict is returned.
func (r *Registry) Register(h Helper) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if h == nil {
		return fmt.Errorf("%w: nil helper", ErrRegistrationConflict)
	}

	ext := h.NamespaceExtension()
	if ext == "" {
		return fmt.Errorf("%w: helper %T has an empty namespace extension", ErrRegistrationConflict, h)
	}

	if existing, ok := r.byExt[ext]; ok {
		if sameHelper(existing, h) {
			return nil
		}
		log.Printf("Toolbar helper %T not registered: extension %q already belongs to %T", h, ext, existing)
		return fmt.Errorf("%w: extension %q already registered", ErrRegistrationConflict, ext)
	}

	r.helpers = append(r.helpers, h)
	r.byExt[ext] = h
	return nil
}

// Seal ends the registration phase. Later calls to Register fail with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether the registration phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of registered helpers.
func (r *Registry) Len() int {
	return len(r.helpers)
}

// Helpers returns the registered helpers in registration order.
func (r *Registry) Helpers() []Helper {
	out := make([]Helper, len(r.helpers))
	copy(out, r.helpers)
	return out
}

// Helper returns the helper registered under the namespace extension ext.
func (r *Registry) Helper(ext string) (Helper, bool) {
	h, ok := r.byExt[ext]
	return h, ok
}

// Owner returns the helper whose namespace extension is a proper suffix of id.
// The longest matching extension wins. A miss means id is not a helper item.
func (r *Registry) Owner(id string) (Helper, bool) {
	var owner Helper
	best := 0
	for _, h := range r.helpers {
		ext := h.NamespaceExtension()
		if len(ext) >= len(id) || len(ext) <= best {
			continue
		}
		if strings.HasSuffix(id, ext) {
			owner = h
			best = len(ext)
		}
	}
	return owner, owner != nil
}

// sameHelper compares two helpers without panicking on uncomparable dynamic types.
func sameHelper(a, b Helper) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
