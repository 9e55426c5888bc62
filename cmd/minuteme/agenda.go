package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
)

var (
	planTopics []string
	planPoints []string
	planName   string
	planDate   string
)

// newAgendaCommand creates the 'agenda' command group.
func newAgendaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Preview agenda planning",
	}

	plan := &cobra.Command{
		Use:   "plan",
		Short: "Print the agenda the planner would build",
		Long: `Plan an agenda from topics and discussion points and print it as JSON.

Nothing is stored. Priorities come from the keyword classifier and each item
gets the time box for its priority.

Examples:
  minuteme agenda plan --topic "Fix login outage" --topic "Team lunch"
  minuteme agenda plan --topic "Q3 roadmap" --point "Review hiring plan" --date 2026-11-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgendaPlan(cmd, agenda.Input{
				MeetingName:      planName,
				MeetingDate:      planDate,
				Topics:           planTopics,
				DiscussionPoints: planPoints,
			})
		},
	}

	plan.Flags().StringArrayVarP(&planTopics, "topic", "t", nil, "Topic to discuss (repeatable)")
	plan.Flags().StringArrayVarP(&planPoints, "point", "p", nil, "Discussion point (repeatable)")
	plan.Flags().StringVar(&planName, "name", "", "Meeting name (derived from topics when empty)")
	plan.Flags().StringVar(&planDate, "date", "", "Meeting date as YYYY-MM-DD (defaults to today)")

	cmd.AddCommand(plan)
	return cmd
}

func runAgendaPlan(cmd *cobra.Command, in agenda.Input) error {
	if len(in.Topics) == 0 && len(in.DiscussionPoints) == 0 {
		return fmt.Errorf("at least one --topic or --point is required")
	}
	if in.MeetingDate != "" {
		if _, err := time.Parse(entities.DateLayout, in.MeetingDate); err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD, got %q", in.MeetingDate)
		}
	}

	planner := agenda.NewService(nil, nil, nil, nil, newLogger())
	return writePlan(cmd.OutOrStdout(), planner.Plan(cmd.Context(), in))
}

func writePlan(out io.Writer, a *entities.Agenda) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
