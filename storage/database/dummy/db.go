package dummydb

import (
	"sync"

	"github.com/trezcool/chuo/core/record"
	"github.com/trezcool/chuo/core/user"
)

type (
	DB struct {
		user       *userTable
		attendance *attendanceTable
		grade      *gradeTable
	}

	userTable struct {
		sync.RWMutex
		seq   int
		table map[int]*user.User
	}

	attendanceTable struct {
		sync.RWMutex
		seq   int
		table map[int]*record.Attendance
	}

	gradeTable struct {
		sync.RWMutex
		seq   int
		table map[int]*record.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		attendance: &attendanceTable{table: make(map[int]*record.Attendance)},
		grade:      &gradeTable{table: make(map[int]*record.Grade)},
	}
	return db, nil
}
