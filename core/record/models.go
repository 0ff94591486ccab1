package record

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/chuo/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

// Attendance is a dated attendance mark issued by a teacher for a student.
// It stays invisible to the student until published; publishing is one-way.
type Attendance struct {
	ID        int       `json:"id"`
	TeacherID int       `json:"teacher_id"`
	StudentID int       `json:"student_id"`
	Date      time.Time `json:"date"` // UTC
	Status    string    `json:"status"`
	Published bool      `json:"published"`
	Meta      string    `json:"meta,omitempty"`
}

// Grade is a scored assessment issued by a teacher for a student.
// Same publication lifecycle as Attendance.
type Grade struct {
	ID        int       `json:"id"`
	TeacherID int       `json:"teacher_id"`
	StudentID int       `json:"student_id"`
	Title     string    `json:"title"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewAttendance contains information needed to create a new Attendance.
// Status defaults to "present" and Date to the current time when omitted.
type NewAttendance struct {
	StudentID int       `json:"student_id" validate:"required"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status" validate:"omitempty,oneof=present absent late excused"`
	Meta      string    `json:"meta"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	na.Status = core.CleanString(na.Status, true /* lower */)
	na.Meta = core.CleanString(na.Meta)
	return validate.Struct(na)
}

// NewGrade contains information needed to create a new Grade.
// MaxScore defaults to 100 when omitted.
type NewGrade struct {
	StudentID int    `json:"student_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Score     int    `json:"score" validate:"gte=0"`
	MaxScore  int    `json:"max_score" validate:"omitempty,gt=0"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Title = core.CleanString(ng.Title)
	return validate.Struct(ng)
}
