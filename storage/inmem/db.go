// Package inmemdb keeps documents in memory, for tests and throwaway runs.
package inmemdb

import (
	"sync"
)

type (
	DB struct {
		lessons  map[string]*table // keyed by document name
		progress *table
		mutex    sync.Mutex
	}

	// table holds one serialized document.
	table struct {
		data     []byte
		writeErr error
		mutex    sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		lessons:  make(map[string]*table),
		progress: &table{},
	}
}

func (db *DB) lessonTable(name string) *table {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	t, ok := db.lessons[name]
	if !ok {
		t = &table{}
		db.lessons[name] = t
	}
	return t
}

func (t *table) read() ([]byte, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if t.data == nil {
		return nil, false
	}
	return append([]byte(nil), t.data...), true
}

func (t *table) write(data []byte) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.writeLocked(data)
}

func (t *table) writeLocked(data []byte) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	t.data = append([]byte(nil), data...)
	return nil
}

func (t *table) failWrites(err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.writeErr = err
}
