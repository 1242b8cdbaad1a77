// Package storage keeps a local archive of fetched datasets so past
// runs can be listed and re-rendered without hitting the API again.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/taskfleet/poolwatch/types"
)

// Kind selects which dataset a snapshot holds.
type Kind string

const (
	KindPools   Kind = "pools"
	KindWorkers Kind = "workers"
)

// Bucket names in bbolt
var (
	bucketPools   = []byte(KindPools)
	bucketWorkers = []byte(KindWorkers)
	bucketMeta    = []byte("meta")
)

// Archive is a bbolt-backed store of dataset snapshots.
type Archive struct {
	db *bbolt.DB
}

// SnapshotInfo describes one archived dataset.
type SnapshotInfo struct {
	Key        string    `json:"key"`
	Kind       Kind      `json:"kind"`
	Deployment string    `json:"deployment"`
	PoolID     string    `json:"poolId,omitempty"`
	Taken      time.Time `json:"taken"`
	Records    int       `json:"records"`
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Archive, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot archive: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketPools, bucketWorkers, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Archive{db: db}, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record archives a dataset and returns its snapshot key.
func (a *Archive) Record(kind Kind, deployment, poolID string, records []types.Record, taken time.Time) (string, error) {
	key := fmt.Sprintf("%s/%s", deployment, taken.UTC().Format(time.RFC3339))

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	info := SnapshotInfo{
		Key:        key,
		Kind:       kind,
		Deployment: deployment,
		PoolID:     poolID,
		Taken:      taken.UTC(),
		Records:    len(records),
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("encode snapshot meta: %w", err)
	}

	err = a.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := dataBucket(tx, kind)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(key), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(metaKey(kind, key), meta)
	})
	if err != nil {
		return "", fmt.Errorf("store snapshot %s: %w", key, err)
	}
	return key, nil
}

// List returns snapshot metadata, newest first.
func (a *Archive) List() ([]SnapshotInfo, error) {
	var infos []SnapshotInfo
	err := a.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).ForEach(func(_, v []byte) error {
			var info SnapshotInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return fmt.Errorf("decode snapshot meta: %w", err)
			}
			infos = append(infos, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Taken.After(infos[j].Taken)
	})
	return infos, nil
}

// Load reads back an archived dataset by kind and key.
func (a *Archive) Load(kind Kind, key string) ([]types.Record, error) {
	var records []types.Record
	err := a.db.View(func(tx *bbolt.Tx) error {
		bucket, err := dataBucket(tx, kind)
		if err != nil {
			return err
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("no %s snapshot %q", kind, key)
		}
		return json.Unmarshal(data, &records)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func dataBucket(tx *bbolt.Tx, kind Kind) (*bbolt.Bucket, error) {
	switch kind {
	case KindPools:
		return tx.Bucket(bucketPools), nil
	case KindWorkers:
		return tx.Bucket(bucketWorkers), nil
	default:
		return nil, fmt.Errorf("unknown snapshot kind %q", kind)
	}
}

func metaKey(kind Kind, key string) []byte {
	return []byte(string(kind) + "/" + key)
}
