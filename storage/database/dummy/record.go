package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/chuo/core/record"
)

type recordRepository struct {
	attendance *attendanceTable
	grade      *gradeTable
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *DB) record.Repository {
	return &recordRepository{attendance: db.attendance, grade: db.grade}
}

func (repo *recordRepository) CreateAttendance(_ context.Context, att record.Attendance) (record.Attendance, error) {
	repo.attendance.Lock()
	defer repo.attendance.Unlock()

	repo.attendance.seq++
	att.ID = repo.attendance.seq
	repo.attendance.table[att.ID] = &att
	return att, nil
}

func (repo *recordRepository) PublishAttendance(_ context.Context, id int) (record.Attendance, error) {
	repo.attendance.Lock()
	defer repo.attendance.Unlock()

	att, ok := repo.attendance.table[id]
	if !ok {
		return record.Attendance{}, record.ErrNotFound
	}
	att.Published = true
	return *att, nil
}

func (repo *recordRepository) FilterPublishedAttendance(_ context.Context, studentID int) ([]record.Attendance, error) {
	repo.attendance.RLock()
	defer repo.attendance.RUnlock()

	atts := make([]record.Attendance, 0)
	for _, att := range repo.attendance.table {
		if att.StudentID == studentID && att.Published {
			atts = append(atts, *att)
		}
	}
	sort.Slice(atts, func(i, j int) bool { return atts[i].ID < atts[j].ID })
	return atts, nil
}

func (repo *recordRepository) CreateGrade(_ context.Context, grd record.Grade) (record.Grade, error) {
	repo.grade.Lock()
	defer repo.grade.Unlock()

	repo.grade.seq++
	grd.ID = repo.grade.seq
	repo.grade.table[grd.ID] = &grd
	return grd, nil
}

func (repo *recordRepository) PublishGrade(_ context.Context, id int) (record.Grade, error) {
	repo.grade.Lock()
	defer repo.grade.Unlock()

	grd, ok := repo.grade.table[id]
	if !ok {
		return record.Grade{}, record.ErrNotFound
	}
	grd.Published = true
	return *grd, nil
}

func (repo *recordRepository) FilterPublishedGrades(_ context.Context, studentID int) ([]record.Grade, error) {
	repo.grade.RLock()
	defer repo.grade.RUnlock()

	grds := make([]record.Grade, 0)
	for _, grd := range repo.grade.table {
		if grd.StudentID == studentID && grd.Published {
			grds = append(grds, *grd)
		}
	}
	sort.Slice(grds, func(i, j int) bool { return grds[i].ID < grds[j].ID })
	return grds, nil
}
