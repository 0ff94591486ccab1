package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/chuo/api/echo"
	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/record"
	"github.com/trezcool/chuo/core/user"
	emailsvc "github.com/trezcool/chuo/services/email"
	logsvc "github.com/trezcool/chuo/services/logger"
	"github.com/trezcool/chuo/storage/database"
	sqlxrepos "github.com/trezcool/chuo/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(std, err)

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))

	// set up DB
	errAndDie(std, database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, database.Migrate(db.DB))

	// set up validation
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrRepo := sqlxrepos.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, mailSvc)
	recSvc := record.NewService(sqlxrepos.NewRecordRepository(db), usrRepo)

	if conf.Debug {
		seedDevUsers(usrSvc, logger)
	}

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    usrSvc,
		RecordSvc:  recSvc,
		Validate:   validate,
		Translator: translator,
	})
	app.Start()
}

// seedDevUsers creates a default teacher and student account for local development.
func seedDevUsers(svc user.Service, logger core.Logger) {
	ctx := context.Background()
	seeds := []user.NewUser{
		{Name: "Prof Rajesh", Email: "teacher@college.edu", Password: "password", Role: user.RoleTeacher},
		{Name: "Rahul Sharma", Email: "student@college.edu", Password: "password", Role: user.RoleStudent},
	}
	for _, nu := range seeds {
		if _, err := svc.GetByEmail(ctx, nu.Email); err == nil {
			continue
		}
		if _, err := svc.Register(ctx, nu); err != nil {
			logger.Warn(fmt.Sprintf("seeding %s: %v", nu.Email, err))
		}
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
