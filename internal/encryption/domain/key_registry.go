package domain

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Key is a registered 32-byte symmetric key.
type Key struct {
	ID       string
	Material []byte
}

// KeyRegistry maps key ids to key material and designates one id as active.
//
// The active id tags every new envelope; older ids stay registered so values
// encrypted before a rotation can still be decrypted. The registry is safe for
// concurrent use and is mutated only at configuration or rotation time.
type KeyRegistry struct {
	mu       sync.RWMutex
	activeID string
	keys     map[string][]byte
}

// KeyRegistryParams configures LoadKeyRegistry.
type KeyRegistryParams struct {
	// PrimaryKeyID and PrimaryKey (hex) are required; the primary id is
	// active unless ActiveKeyID overrides it.
	PrimaryKeyID string
	PrimaryKey   string

	// AdditionalKeys is a comma separated list of "id:hex" pairs.
	AdditionalKeys string

	ActiveKeyID string
}

// NewKeyRegistry creates a registry holding the primary key, which becomes
// the active key.
func NewKeyRegistry(primaryID, primaryKeyHex string) (*KeyRegistry, error) {
	if primaryKeyHex == "" {
		return nil, ErrEncryptionKeyNotSet
	}
	if primaryID == "" {
		return nil, ErrEncryptionKeyIDNotSet
	}

	r := &KeyRegistry{keys: make(map[string][]byte)}
	if err := r.SetKey(primaryID, primaryKeyHex); err != nil {
		return nil, err
	}
	r.activeID = primaryID

	return r, nil
}

// LoadKeyRegistry builds a registry from configuration values.
//
// On any error the partially built registry is closed so no key material
// outlives the failed load.
func LoadKeyRegistry(params KeyRegistryParams) (*KeyRegistry, error) {
	r, err := NewKeyRegistry(params.PrimaryKeyID, params.PrimaryKey)
	if err != nil {
		return nil, err
	}

	if params.AdditionalKeys != "" {
		pairs, err := ParseKeyList(params.AdditionalKeys)
		if err != nil {
			r.Close()
			return nil, err
		}
		for _, p := range pairs {
			if err := r.SetKey(p.ID, p.Hex); err != nil {
				r.Close()
				return nil, err
			}
		}
	}

	if params.ActiveKeyID != "" {
		if err := r.SetActiveKeyID(params.ActiveKeyID); err != nil {
			r.Close()
			return nil, err
		}
	}

	return r, nil
}

// KeyPair is one "id:hex" entry of a key list.
type KeyPair struct {
	ID  string
	Hex string
}

// ParseKeyList parses a comma separated "id:hex" list. Blank entries are
// skipped; entries without an id or key return ErrInvalidKeysFormat.
func ParseKeyList(raw string) ([]KeyPair, error) {
	var pairs []KeyPair
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, keyHex, ok := strings.Cut(part, ":")
		id = strings.TrimSpace(id)
		keyHex = strings.TrimSpace(keyHex)
		if !ok || id == "" || keyHex == "" {
			// Only the id is echoed; the entry may hold key material.
			return nil, fmt.Errorf("%w: entry %q", ErrInvalidKeysFormat, id)
		}
		pairs = append(pairs, KeyPair{ID: id, Hex: keyHex})
	}
	return pairs, nil
}

// SetKey registers or overwrites a hex encoded key.
func (r *KeyRegistry) SetKey(keyID, keyHex string) error {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("%w for key %q", ErrInvalidKeyHex, keyID)
	}
	defer Zero(key)

	return r.SetKeyBytes(keyID, key)
}

// SetKeyBytes registers or overwrites a raw key. The bytes are copied.
func (r *KeyRegistry) SetKeyBytes(keyID string, key []byte) error {
	if keyID == "" {
		return ErrEmptyKeyID
	}
	if len(key) != KeySize {
		return fmt.Errorf("%w: key %q must be %d bytes, got %d", ErrInvalidKeySize, keyID, KeySize, len(key))
	}

	material := make([]byte, KeySize)
	copy(material, key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keys == nil {
		r.keys = make(map[string][]byte)
	}
	if old, ok := r.keys[keyID]; ok {
		Zero(old)
	}
	r.keys[keyID] = material

	return nil
}

// GetKey resolves a key id to a copy of its key.
//
// An empty id resolves to the active key. This branch exists for envelopes
// written before key ids were recorded. A non-empty id that is not registered
// returns ErrKeyNotFound; it never falls back to the active key.
func (r *KeyRegistry) GetKey(keyID string) (*Key, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := keyID
	if id == "" {
		id = r.activeID
	}

	material, ok := r.keys[id]
	if !ok || id == "" {
		if keyID == "" {
			return nil, fmt.Errorf("%w: no active key", ErrKeyNotFound)
		}
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}

	out := make([]byte, len(material))
	copy(out, material)

	return &Key{ID: id, Material: out}, nil
}

// ActiveKeyID returns the id new envelopes are tagged with.
func (r *KeyRegistry) ActiveKeyID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// SetActiveKeyID switches the active key. The id must already be registered.
func (r *KeyRegistry) SetActiveKeyID(keyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[keyID]; !ok || keyID == "" {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}
	r.activeID = keyID

	return nil
}

// KeyIDs returns the registered ids in sorted order.
func (r *KeyRegistry) KeyIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.keys))
	for id := range r.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close zeroes all key material and empties the registry.
func (r *KeyRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, material := range r.keys {
		Zero(material)
		delete(r.keys, id)
	}
	r.activeID = ""
}
