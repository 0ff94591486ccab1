package record

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/user"
)

// fakeRepo is a minimal in-memory Repository for service tests.
type fakeRepo struct {
	attSeq int
	atts   map[int]*Attendance
	grdSeq int
	grds   map[int]*Grade
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		atts: make(map[int]*Attendance),
		grds: make(map[int]*Grade),
	}
}

func (repo *fakeRepo) CreateAttendance(_ context.Context, att Attendance) (Attendance, error) {
	repo.attSeq++
	att.ID = repo.attSeq
	repo.atts[att.ID] = &att
	return att, nil
}

func (repo *fakeRepo) PublishAttendance(_ context.Context, id int) (Attendance, error) {
	att, ok := repo.atts[id]
	if !ok {
		return Attendance{}, ErrNotFound
	}
	att.Published = true
	return *att, nil
}

func (repo *fakeRepo) FilterPublishedAttendance(_ context.Context, studentID int) ([]Attendance, error) {
	atts := make([]Attendance, 0)
	for _, att := range repo.atts {
		if att.StudentID == studentID && att.Published {
			atts = append(atts, *att)
		}
	}
	return atts, nil
}

func (repo *fakeRepo) CreateGrade(_ context.Context, grd Grade) (Grade, error) {
	repo.grdSeq++
	grd.ID = repo.grdSeq
	repo.grds[grd.ID] = &grd
	return grd, nil
}

func (repo *fakeRepo) PublishGrade(_ context.Context, id int) (Grade, error) {
	grd, ok := repo.grds[id]
	if !ok {
		return Grade{}, ErrNotFound
	}
	grd.Published = true
	return *grd, nil
}

func (repo *fakeRepo) FilterPublishedGrades(_ context.Context, studentID int) ([]Grade, error) {
	grds := make([]Grade, 0)
	for _, grd := range repo.grds {
		if grd.StudentID == studentID && grd.Published {
			grds = append(grds, *grd)
		}
	}
	return grds, nil
}

// fakeUserRepo knows a fixed set of users.
type fakeUserRepo struct {
	users map[int]user.User
}

var _ user.Repository = (*fakeUserRepo)(nil)

func (repo *fakeUserRepo) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	return usr, nil
}

func (repo *fakeUserRepo) GetUserByID(_ context.Context, id int) (user.User, error) {
	if usr, ok := repo.users[id]; ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, usr := range repo.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *fakeUserRepo) SetUserPassword(_ context.Context, id int, hash []byte) error {
	return nil
}

const (
	teacherID = 1
	studentID = 2
)

func setup(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	usrRepo := &fakeUserRepo{users: map[int]user.User{
		teacherID: {ID: teacherID, Name: "Prof Kalle", Email: "kalle@test.cd", Role: user.RoleTeacher},
		studentID: {ID: studentID, Name: "Awe Lol", Email: "awe@test.cd", Role: user.RoleStudent},
	}}
	return NewService(repo, usrRepo), repo
}

func Test_service_CreateAttendance(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.CreateAttendance(ctx, teacherID, NewAttendance{StudentID: 666})
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("CreateAttendance() error = %v, want *core.ValidationError", err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "student_id" {
			t.Errorf("Fields = %v, want a single student_id error", vErr.Fields)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		before := time.Now().UTC()
		att, err := svc.CreateAttendance(ctx, teacherID, NewAttendance{StudentID: studentID})
		if err != nil {
			t.Fatalf("CreateAttendance() failed: %v", err)
		}
		if att.Status != StatusPresent {
			t.Errorf("Status = %s, want %s", att.Status, StatusPresent)
		}
		if att.Date.Before(before) || att.Date.After(time.Now().UTC()) {
			t.Errorf("Date = %v, want current time", att.Date)
		}
		if att.Published {
			t.Error("new record must be a draft")
		}
		if att.TeacherID != teacherID {
			t.Errorf("TeacherID = %d, want %d", att.TeacherID, teacherID)
		}
	})

	t.Run("explicit values kept", func(t *testing.T) {
		date := time.Date(2021, 3, 15, 8, 0, 0, 0, time.UTC)
		att, err := svc.CreateAttendance(ctx, teacherID, NewAttendance{
			StudentID: studentID, Date: date, Status: StatusExcused, Meta: "doctor's note",
		})
		if err != nil {
			t.Fatalf("CreateAttendance() failed: %v", err)
		}
		if att.Status != StatusExcused {
			t.Errorf("Status = %s, want %s", att.Status, StatusExcused)
		}
		if !att.Date.Equal(date) {
			t.Errorf("Date = %v, want %v", att.Date, date)
		}
		if att.Meta != "doctor's note" {
			t.Errorf("Meta = %s, want doctor's note", att.Meta)
		}
	})
}

func Test_service_CreateGrade(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.CreateGrade(ctx, teacherID, NewGrade{StudentID: 666, Title: "Quiz 1"})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Fatalf("CreateGrade() error = %v, want *core.ValidationError", err)
		}
	})

	t.Run("max score defaults to 100", func(t *testing.T) {
		grd, err := svc.CreateGrade(ctx, teacherID, NewGrade{StudentID: studentID, Title: "Quiz 1", Score: 80})
		if err != nil {
			t.Fatalf("CreateGrade() failed: %v", err)
		}
		if grd.MaxScore != 100 {
			t.Errorf("MaxScore = %d, want 100", grd.MaxScore)
		}
		if grd.Published {
			t.Error("new record must be a draft")
		}
	})

	t.Run("explicit max score kept", func(t *testing.T) {
		grd, err := svc.CreateGrade(ctx, teacherID, NewGrade{StudentID: studentID, Title: "Quiz 2", Score: 8, MaxScore: 10})
		if err != nil {
			t.Fatalf("CreateGrade() failed: %v", err)
		}
		if grd.MaxScore != 10 {
			t.Errorf("MaxScore = %d, want 10", grd.MaxScore)
		}
	})
}

func Test_service_Publish(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	att, err := svc.CreateAttendance(ctx, teacherID, NewAttendance{StudentID: studentID})
	if err != nil {
		t.Fatalf("CreateAttendance() failed: %v", err)
	}

	t.Run("unknown id", func(t *testing.T) {
		if _, err := svc.PublishAttendance(ctx, 666); err != ErrNotFound {
			t.Errorf("PublishAttendance() error = %v, want ErrNotFound", err)
		}
		if _, err := svc.PublishGrade(ctx, 666); err != ErrNotFound {
			t.Errorf("PublishGrade() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("publish is one-way and idempotent", func(t *testing.T) {
		pub, err := svc.PublishAttendance(ctx, att.ID)
		if err != nil {
			t.Fatalf("PublishAttendance() failed: %v", err)
		}
		if !pub.Published {
			t.Error("record not published")
		}

		again, err := svc.PublishAttendance(ctx, att.ID)
		if err != nil {
			t.Fatalf("PublishAttendance() failed on republish: %v", err)
		}
		if again != pub {
			t.Errorf("republish = %+v, want %+v", again, pub)
		}
	})
}

func Test_service_StudentRecords(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	att, _ := svc.CreateAttendance(ctx, teacherID, NewAttendance{StudentID: studentID})
	svc.CreateAttendance(ctx, teacherID, NewAttendance{StudentID: studentID}) // stays a draft
	grd, _ := svc.CreateGrade(ctx, teacherID, NewGrade{StudentID: studentID, Title: "Quiz 1", Score: 8})

	if _, err := svc.PublishAttendance(ctx, att.ID); err != nil {
		t.Fatalf("PublishAttendance() failed: %v", err)
	}
	if _, err := svc.PublishGrade(ctx, grd.ID); err != nil {
		t.Fatalf("PublishGrade() failed: %v", err)
	}

	atts, err := svc.StudentAttendance(ctx, studentID)
	if err != nil {
		t.Fatalf("StudentAttendance() failed: %v", err)
	}
	if len(atts) != 1 || atts[0].ID != att.ID || !atts[0].Published {
		t.Errorf("StudentAttendance() = %+v, want the single published record", atts)
	}

	grds, err := svc.StudentGrades(ctx, studentID)
	if err != nil {
		t.Fatalf("StudentGrades() failed: %v", err)
	}
	if len(grds) != 1 || grds[0].ID != grd.ID {
		t.Errorf("StudentGrades() = %+v, want the single published record", grds)
	}

	// another student sees nothing
	other, err := svc.StudentAttendance(ctx, teacherID)
	if err != nil {
		t.Fatalf("StudentAttendance() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("StudentAttendance() = %+v, want empty", other)
	}
}
