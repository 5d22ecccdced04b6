package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/insight"
)

// genInsight regenerates a student's insight snapshot and prints it.
func (cli *commandLine) genInsight(email string) error {
	ctx := context.Background()

	stu, err := cli.stuSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	snap, err := cli.insightSvc.Generate(ctx, stu.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Insight report for %s <%s>\n", stu.Name, stu.Email)
	fmt.Printf("  Predicted next GPA: %.2f (at-risk threshold: %.1f)\n", snap.PredictedGPA, core.Conf.Insight.AtRiskGPA)
	fmt.Println("  Career match scores:")
	for _, field := range insight.CareerFields {
		fmt.Printf("    %-22s %3d\n", field.Name, snap.CareerScores[field.Name])
	}
	if len(snap.Recommendations) > 0 {
		fmt.Printf("  Recommended skills: %s\n", strings.Join(snap.Recommendations, ", "))
	}
	fmt.Printf("  Generated at: %s\n", snap.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}
