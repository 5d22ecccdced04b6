package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mwalimu/insight/core/insight"
	"github.com/mwalimu/insight/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sqlx.DB
	stuRepo    student.Repository
	stuSvc     *student.Service
	insightSvc insight.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]     - run DB migrations (up, down, status, ...)")
	fmt.Println("  seeddemo                   - load a demo cohort of students with records")
	fmt.Println("  geninsight -student EMAIL  - generate and print a student's insight report")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	genInsightCmd := flag.NewFlagSet("geninsight", flag.ExitOnError)
	genInsightStudent := genInsightCmd.String("student", "", "The student's email.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seeddemo":
		return cli.seedDemo()
	case "geninsight":
		if err := genInsightCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *genInsightStudent == "" {
			genInsightCmd.Usage()
			return errHelp
		}
		return cli.genInsight(*genInsightStudent)
	default:
		cli.printUsage()
		return errHelp
	}
}
