package record

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")

	errUnknownStudent = "student not found"
)

type (
	Repository interface {
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		// PublishAttendance flips the record to published and returns it.
		// Publishing an already published record is a no-op success.
		// It fails with ErrNotFound if no record has this id.
		PublishAttendance(ctx context.Context, id int) (Attendance, error)
		// FilterPublishedAttendance returns the student's published records only;
		// drafts never leave the store.
		FilterPublishedAttendance(ctx context.Context, studentID int) ([]Attendance, error)

		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		PublishGrade(ctx context.Context, id int) (Grade, error)
		FilterPublishedGrades(ctx context.Context, studentID int) ([]Grade, error)
	}

	Service interface {
		CreateAttendance(ctx context.Context, teacherID int, na NewAttendance) (Attendance, error)
		PublishAttendance(ctx context.Context, id int) (Attendance, error)
		StudentAttendance(ctx context.Context, studentID int) ([]Attendance, error)

		CreateGrade(ctx context.Context, teacherID int, ng NewGrade) (Grade, error)
		PublishGrade(ctx context.Context, id int) (Grade, error)
		StudentGrades(ctx context.Context, studentID int) ([]Grade, error)
	}

	service struct {
		repo    Repository
		usrRepo user.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrRepo user.Repository) Service {
	return &service{
		repo:    repo,
		usrRepo: usrRepo,
	}
}

// checkStudent ensures the target student exists before inserting a record.
func (svc *service) checkStudent(ctx context.Context, studentID int) error {
	if _, err := svc.usrRepo.GetUserByID(ctx, studentID); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "student_id", Error: errUnknownStudent})
		}
		return errors.Wrap(err, "finding student")
	}
	return nil
}

func (svc *service) CreateAttendance(ctx context.Context, teacherID int, na NewAttendance) (Attendance, error) {
	if err := svc.checkStudent(ctx, na.StudentID); err != nil {
		return Attendance{}, err
	}

	att := Attendance{
		TeacherID: teacherID,
		StudentID: na.StudentID,
		Date:      na.Date.UTC(),
		Status:    na.Status,
		Meta:      na.Meta,
	}
	if na.Date.IsZero() {
		att.Date = time.Now().UTC()
	}
	if att.Status == "" {
		att.Status = StatusPresent
	}
	return svc.repo.CreateAttendance(ctx, att)
}

func (svc *service) PublishAttendance(ctx context.Context, id int) (Attendance, error) {
	return svc.repo.PublishAttendance(ctx, id)
}

func (svc *service) StudentAttendance(ctx context.Context, studentID int) ([]Attendance, error) {
	return svc.repo.FilterPublishedAttendance(ctx, studentID)
}

func (svc *service) CreateGrade(ctx context.Context, teacherID int, ng NewGrade) (Grade, error) {
	if err := svc.checkStudent(ctx, ng.StudentID); err != nil {
		return Grade{}, err
	}

	grd := Grade{
		TeacherID: teacherID,
		StudentID: ng.StudentID,
		Title:     ng.Title,
		Score:     ng.Score,
		MaxScore:  ng.MaxScore,
		CreatedAt: time.Now().UTC(),
	}
	if grd.MaxScore == 0 {
		grd.MaxScore = 100
	}
	return svc.repo.CreateGrade(ctx, grd)
}

func (svc *service) PublishGrade(ctx context.Context, id int) (Grade, error) {
	return svc.repo.PublishGrade(ctx, id)
}

func (svc *service) StudentGrades(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.repo.FilterPublishedGrades(ctx, studentID)
}
