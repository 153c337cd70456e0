package dummydb

import "sync"

type (
	DB struct {
		departments *table
		sections    *table
		emails      *table
		rollNumbers *table
	}

	table struct {
		sync.RWMutex
		values []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		departments: new(table),
		sections:    new(table),
		emails:      new(table),
		rollNumbers: new(table),
	}
	return db, nil
}

func (t *table) add(values ...string) {
	t.Lock()
	defer t.Unlock()
	t.values = append(t.values, values...)
}

func (t *table) query() []string {
	t.RLock()
	defer t.RUnlock()
	values := make([]string, len(t.values))
	copy(values, t.values)
	return values
}

// Seeding helpers, used by tests and local dev.

func (db *DB) AddDepartments(names ...string)  { db.departments.add(names...) }
func (db *DB) AddSections(names ...string)     { db.sections.add(names...) }
func (db *DB) AddAccountEmails(emails ...string) { db.emails.add(emails...) }
func (db *DB) AddRollNumbers(rollNumbers ...string) { db.rollNumbers.add(rollNumbers...) }
