// Package store persists codec-encoded records in pebble.
//
// A DB holds any number of tables. Each table owns the key prefix
// "<name>/" and encodes its values with one codec:
//
//	db, err := store.Open(dir, store.Options{})
//	results := store.NewTable(db, "results", resultsCodec)
//	err = results.Put("round-1", Results{Win: 20})
package store

import (
	stderrors "errors"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Options holds configuration for Open
type Options struct {
	// FS overrides the filesystem. nil means the OS filesystem; tests use
	// vfs.NewMem().
	FS vfs.FS

	// Logger receives debug entries for writes. nil means no logging.
	Logger *zap.Logger

	// Sync makes every write durable before returning.
	Sync bool
}

// DB is an open pebble database.
type DB struct {
	db  *pebble.DB
	wo  *pebble.WriteOptions
	log *zap.Logger
}

// Open opens or creates the database in dir.
func Open(dir string, opts Options) (*DB, error) {
	po := &pebble.Options{}
	if opts.FS != nil {
		po.FS = opts.FS
	}
	db, err := pebble.Open(dir, po)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindIO, err, "open "+dir)
	}

	wo := pebble.NoSync
	if opts.Sync {
		wo = pebble.Sync
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{db: db, wo: wo, log: log}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindIO, err, "close")
	}
	return nil
}

// Table is a typed view of the records under one key prefix.
type Table[V any] struct {
	db    *DB
	codec codec.Codec[V]
	name  string
}

// NewTable returns the table called name. Names must not contain '/'.
func NewTable[V any](db *DB, name string, c codec.Codec[V]) *Table[V] {
	return &Table[V]{db: db, codec: c, name: name}
}

func (t *Table[V]) key(k string) []byte {
	return []byte(t.name + "/" + k)
}

// Put encodes v and stores it under k, replacing any previous record.
func (t *Table[V]) Put(k string, v V) error {
	data, err := codec.Encode(t.codec, v)
	if err != nil {
		return errors.AtPath(err, k)
	}
	if err := t.db.db.Set(t.key(k), data, t.db.wo); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindIO, err, "put "+t.name+"/"+k)
	}
	if ce := t.db.log.Check(zap.DebugLevel, "record stored"); ce != nil {
		ce.Write(zap.String("table", t.name), zap.String("key", k), zap.Int("bytes", len(data)))
	}
	return nil
}

// Get loads and decodes the record under k.
func (t *Table[V]) Get(k string) (V, error) {
	var zero V
	data, closer, err := t.db.db.Get(t.key(k))
	if stderrors.Is(err, pebble.ErrNotFound) {
		return zero, errors.NotFound(errors.PhaseStore, "record", t.name+"/"+k)
	}
	if err != nil {
		return zero, errors.Wrap(errors.PhaseStore, errors.KindIO, err, "get "+t.name+"/"+k)
	}
	defer closer.Close()

	v, err := t.decode(k, data)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// decode requires the record to be exactly one encoded value.
func (t *Table[V]) decode(k string, data []byte) (V, error) {
	v, n, err := codec.Read(t.codec, data, 0)
	if err != nil {
		return v, errors.AtPath(err, k)
	}
	if n != len(data) {
		var zero V
		return zero, errors.New(errors.PhaseStore, errors.KindInvalidData).
			Path(k).
			Codec(t.codec.Description()).
			Detail("%d trailing bytes after record", len(data)-n).
			Build()
	}
	return v, nil
}

// Delete removes the record under k. Deleting a missing key is not an error.
func (t *Table[V]) Delete(k string) error {
	if err := t.db.db.Delete(t.key(k), t.db.wo); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindIO, err, "delete "+t.name+"/"+k)
	}
	return nil
}

// Scan calls fn for every record in key order. Returning an error from fn
// stops the scan and returns that error.
func (t *Table[V]) Scan(fn func(k string, v V) error) error {
	prefix := t.name + "/"
	iter, err := t.db.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(t.name + "0"), // '0' follows '/'
	})
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindIO, err, "scan "+t.name)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		k := string(iter.Key()[len(prefix):])
		v, err := t.decode(k, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindIO, err, "scan "+t.name)
	}
	return nil
}
