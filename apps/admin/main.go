package main

import (
	"log"
	"os"

	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/insight"
	"github.com/mwalimu/insight/core/student"
	"github.com/mwalimu/insight/services/email"
	"github.com/mwalimu/insight/services/logger"
	"github.com/mwalimu/insight/storage/database"
	"github.com/mwalimu/insight/storage/database/sqlx"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var appLogger core.Logger
	var mailSvc core.EmailService
	if core.Conf.Debug {
		appLogger = logsvc.NewStdLogger(std)
		mailSvc = emailsvc.NewConsoleService()
	} else {
		appLogger = logsvc.NewRollbarLogger(std, core.Conf)
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	// set up DB
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		std.Fatal(err)
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		std.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if err = db.Ping(); err != nil {
		std.Fatal(err)
	}

	stuRepo := sqlxrepos.NewStudentRepository(db)

	// start CLI
	cli := commandLine{
		db:         db,
		stuRepo:    stuRepo,
		stuSvc:     student.NewService(stuRepo, insight.SkillRisk),
		insightSvc: insight.NewService(stuRepo, mailSvc, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
