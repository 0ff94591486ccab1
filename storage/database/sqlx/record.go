package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/chuo/core/record"
)

type recordRepository struct {
	db *sqlx.DB
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *sqlx.DB) *recordRepository {
	return &recordRepository{db: db}
}

type attendanceRow struct {
	ID        int         `db:"id"`
	TeacherID int         `db:"teacher_id"`
	StudentID int         `db:"student_id"`
	Date      time.Time   `db:"date"`
	Status    string      `db:"status"`
	Published bool        `db:"published"`
	Meta      null.String `db:"meta"`
}

func (r attendanceRow) unpack() record.Attendance {
	return record.Attendance{
		ID:        r.ID,
		TeacherID: r.TeacherID,
		StudentID: r.StudentID,
		Date:      r.Date,
		Status:    r.Status,
		Published: r.Published,
		Meta:      r.Meta.String,
	}
}

type gradeRow struct {
	ID        int       `db:"id"`
	TeacherID int       `db:"teacher_id"`
	StudentID int       `db:"student_id"`
	Title     string    `db:"title"`
	Score     int       `db:"score"`
	MaxScore  int       `db:"max_score"`
	Published bool      `db:"published"`
	CreatedAt time.Time `db:"created_at"`
}

func (r gradeRow) unpack() record.Grade {
	return record.Grade{
		ID:        r.ID,
		TeacherID: r.TeacherID,
		StudentID: r.StudentID,
		Title:     r.Title,
		Score:     r.Score,
		MaxScore:  r.MaxScore,
		Published: r.Published,
		CreatedAt: r.CreatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to record.ErrNotFound
func (repo recordRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return record.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo recordRepository) CreateAttendance(ctx context.Context, att record.Attendance) (record.Attendance, error) {
	const q = `
		INSERT INTO attendance (teacher_id, student_id, date, status, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, teacher_id, student_id, date, status, published, meta`

	var row attendanceRow
	err := repo.db.QueryRowxContext(
		ctx, q, att.TeacherID, att.StudentID, att.Date, att.Status, null.NewString(att.Meta, att.Meta != ""),
	).StructScan(&row)
	if err != nil {
		return record.Attendance{}, errors.Wrap(err, "inserting attendance")
	}
	return row.unpack(), nil
}

// PublishAttendance is a single-statement update; the target state is always
// published=true so concurrent publishes cannot conflict.
func (repo recordRepository) PublishAttendance(ctx context.Context, id int) (record.Attendance, error) {
	const q = `
		UPDATE attendance SET published = TRUE
		WHERE id = $1
		RETURNING id, teacher_id, student_id, date, status, published, meta`

	var row attendanceRow
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&row); err != nil {
		return record.Attendance{}, repo.trapNoRowsErr(err, "publishing attendance")
	}
	return row.unpack(), nil
}

func (repo recordRepository) FilterPublishedAttendance(ctx context.Context, studentID int) ([]record.Attendance, error) {
	const q = `
		SELECT id, teacher_id, student_id, date, status, published, meta
		FROM attendance
		WHERE student_id = $1 AND published
		ORDER BY id`

	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	atts := make([]record.Attendance, 0, len(rows))
	for _, row := range rows {
		atts = append(atts, row.unpack())
	}
	return atts, nil
}

func (repo recordRepository) CreateGrade(ctx context.Context, grd record.Grade) (record.Grade, error) {
	const q = `
		INSERT INTO grade (teacher_id, student_id, title, score, max_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, teacher_id, student_id, title, score, max_score, published, created_at`

	var row gradeRow
	err := repo.db.QueryRowxContext(
		ctx, q, grd.TeacherID, grd.StudentID, grd.Title, grd.Score, grd.MaxScore, grd.CreatedAt,
	).StructScan(&row)
	if err != nil {
		return record.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return row.unpack(), nil
}

func (repo recordRepository) PublishGrade(ctx context.Context, id int) (record.Grade, error) {
	const q = `
		UPDATE grade SET published = TRUE
		WHERE id = $1
		RETURNING id, teacher_id, student_id, title, score, max_score, published, created_at`

	var row gradeRow
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&row); err != nil {
		return record.Grade{}, repo.trapNoRowsErr(err, "publishing grade")
	}
	return row.unpack(), nil
}

func (repo recordRepository) FilterPublishedGrades(ctx context.Context, studentID int) ([]record.Grade, error) {
	const q = `
		SELECT id, teacher_id, student_id, title, score, max_score, published, created_at
		FROM grade
		WHERE student_id = $1 AND published
		ORDER BY id`

	var rows []gradeRow
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grds := make([]record.Grade, 0, len(rows))
	for _, row := range rows {
		grds = append(grds, row.unpack())
	}
	return grds, nil
}
