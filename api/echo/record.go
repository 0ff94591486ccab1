package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/record"
	"github.com/trezcool/chuo/core/user"
)

// teacherApi writes and publishes records; any teacher may publish any
// teacher's record (role check only, no authorship check).
type teacherApi struct {
	svc      record.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerTeacherAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc record.Service,
	usrSvc user.Service,
	validate *validator.Validate,
) {
	api := teacherApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	tg := g.Group("/teacher", jwt, TeacherMiddleware())
	tg.POST("/attendance", api.createAttendance)
	tg.POST("/attendance/:id/publish", api.publishAttendance)
	tg.POST("/grades", api.createGrade)
	tg.POST("/grades/:id/publish", api.publishGrade)
}

func (api *teacherApi) createAttendance(ctx echo.Context) error {
	var data record.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := GetContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	att, err := api.svc.CreateAttendance(ctx.Request().Context(), ctxUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating attendance")
	}

	return ctx.JSON(http.StatusCreated, att)
}

func (api *teacherApi) publishAttendance(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return ErrHttpNotFound
	}

	att, err := api.svc.PublishAttendance(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == record.ErrNotFound {
			return ErrHttpNotFound
		}
		return errors.Wrap(err, "publishing attendance")
	}

	return ctx.JSON(http.StatusOK, att)
}

func (api *teacherApi) createGrade(ctx echo.Context) error {
	var data record.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := GetContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	grd, err := api.svc.CreateGrade(ctx.Request().Context(), ctxUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}

	return ctx.JSON(http.StatusCreated, grd)
}

func (api *teacherApi) publishGrade(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return ErrHttpNotFound
	}

	grd, err := api.svc.PublishGrade(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == record.ErrNotFound {
			return ErrHttpNotFound
		}
		return errors.Wrap(err, "publishing grade")
	}

	return ctx.JSON(http.StatusOK, grd)
}

// studentApi reads the caller's own published records; drafts are filtered
// out server-side and never reach a student.
type studentApi struct {
	svc    record.Service
	usrSvc user.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc record.Service, usrSvc user.Service) {
	api := studentApi{
		svc:    svc,
		usrSvc: usrSvc,
	}

	sg := g.Group("/student", jwt, StudentMiddleware())
	sg.GET("/attendance", api.listAttendance)
	sg.GET("/grades", api.listGrades)
}

func (api *studentApi) listAttendance(ctx echo.Context) error {
	ctxUsr, err := GetContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	atts, err := api.svc.StudentAttendance(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}

	return ctx.JSON(http.StatusOK, atts)
}

func (api *studentApi) listGrades(ctx echo.Context) error {
	ctxUsr, err := GetContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	grds, err := api.svc.StudentGrades(ctx.Request().Context(), ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}

	return ctx.JSON(http.StatusOK, grds)
}
