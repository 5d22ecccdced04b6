// Package inmemdb provides an in-memory Record Store used in tests and
// local development without a running Postgres.
package inmemdb

import (
	"sync"

	"github.com/mwalimu/insight/core/student"
)

type studentTable struct {
	mutex sync.RWMutex
	table map[string]*student.Student

	gpas      map[string][]float64
	skills    map[string]map[string]student.Skill
	courses   map[string][]student.Course
	interests map[string][]student.CareerInterest
	snapshots map[string]student.Snapshot
}

type DB struct {
	student *studentTable
}

func NewDB() *DB {
	return &DB{
		student: &studentTable{
			table:     make(map[string]*student.Student),
			gpas:      make(map[string][]float64),
			skills:    make(map[string]map[string]student.Skill),
			courses:   make(map[string][]student.Course),
			interests: make(map[string][]student.CareerInterest),
			snapshots: make(map[string]student.Snapshot),
		},
	}
}
