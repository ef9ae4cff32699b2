// Package store persists bone graphs, Bayes tables and trajectories in
// BadgerDB. Values are msgpack-encoded; keys are slash-separated paths:
//
//	graph/{bone}              → cspace.Snapshot
//	bayes/{parent}/{child}    → []cspace.BayesEntry
//	traj/{name}               → chaos.Trajectory
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("store: not found")

const sep = "/"

// Options configures a Store.
type Options struct {
	// Dir is the directory for data files. Required unless InMemory.
	Dir string

	// InMemory keeps everything in memory.
	InMemory bool

	// Logger receives badger warnings and errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is a BadgerDB-backed repository.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens or creates a store.
func Open(opts Options) (*Store, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("store: Options.Dir is required for on-disk mode")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(badgerLogger{logger})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %q", opts.Dir)
	}
	return &Store{db: db, log: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "store: close")
}

func key(parts ...string) []byte { return []byte(strings.Join(parts, sep)) }

func (s *Store) put(_ context.Context, k []byte, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "store: encode %s", k)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, data)
	})
	return errors.Wrapf(err, "store: set %s", k)
}

func (s *Store) get(_ context.Context, k []byte, v any) error {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.Wrapf(ErrNotFound, "%s", k)
	}
	if err != nil {
		return errors.Wrapf(err, "store: get %s", k)
	}
	return errors.Wrapf(msgpack.Unmarshal(data, v), "store: decode %s", k)
}

// scan calls fn with the key suffix and raw value of every key under prefix.
func (s *Store) scan(ctx context.Context, prefix string, fn func(suffix string, data []byte) error) error {
	p := []byte(prefix + sep)
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = p
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			k := item.KeyCopy(nil)
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(string(k[len(p):]), data); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "store: scan %s", prefix)
}

// badgerLogger routes badger output through slog, dropping info and debug.
type badgerLogger struct{ l *slog.Logger }

func (b badgerLogger) Errorf(f string, v ...interface{}) {
	b.l.Error(strings.TrimSpace(fmt.Sprintf(f, v...)), slog.String("component", "badger"))
}

func (b badgerLogger) Warningf(f string, v ...interface{}) {
	b.l.Warn(strings.TrimSpace(fmt.Sprintf(f, v...)), slog.String("component", "badger"))
}

func (badgerLogger) Infof(string, ...interface{})  {}
func (badgerLogger) Debugf(string, ...interface{}) {}
