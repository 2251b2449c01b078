// Package storage persists machine snapshots in LevelDB.
package storage

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/fxamacker/cbor/v2"
)

const snapshotPrefix = "snapshot/"

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("storage: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalSnapshot serializes a snapshot to canonical CBOR bytes.
func MarshalSnapshot(s *machine.Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*machine.Snapshot, error) {
	var s machine.Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("storage: unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// SnapshotStore keeps named machine snapshots.
type SnapshotStore struct {
	ps *PersistenceStore
}

// OpenSnapshotStore opens the store at path; an empty path keeps it in
// memory.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	ps, err := NewPersistenceStore(path)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{ps: ps}, nil
}

func snapshotKey(name string) []byte {
	return []byte(snapshotPrefix + name)
}

// Save stores s under name, replacing any previous snapshot of that name.
func (st *SnapshotStore) Save(name string, s *machine.Snapshot) error {
	if name == "" {
		return fmt.Errorf("storage: empty snapshot name")
	}
	data, err := MarshalSnapshot(s)
	if err != nil {
		return fmt.Errorf("storage: marshal snapshot %s: %w", name, err)
	}
	if err := st.ps.Put(snapshotKey(name), data); err != nil {
		return err
	}
	log.Debug(log.StorageMonitoring, "snapshot saved", "name", name, "bytes", len(data), "ip", s.IP, "status", s.Status)
	return nil
}

// Load returns the snapshot stored under name.
func (st *SnapshotStore) Load(name string) (*machine.Snapshot, error) {
	data, ok, err := st.ps.Get(snapshotKey(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", vmerrors.ErrSnapshotNotFound, name)
	}
	return UnmarshalSnapshot(data)
}

// List returns the stored snapshot names in order.
func (st *SnapshotStore) List() ([]string, error) {
	pairs, err := st.ps.GetWithPrefix([]byte(snapshotPrefix))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		names = append(names, strings.TrimPrefix(string(kv[0]), snapshotPrefix))
	}
	return names, nil
}

// Delete removes the snapshot stored under name.
func (st *SnapshotStore) Delete(name string) error {
	ok, err := st.ps.Has(snapshotKey(name))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", vmerrors.ErrSnapshotNotFound, name)
	}
	return st.ps.Delete(snapshotKey(name))
}

func (st *SnapshotStore) Close() error {
	return st.ps.Close()
}
