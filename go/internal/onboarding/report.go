package onboarding

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummary prints a per-league table followed by the run totals
func WriteSummary(w io.Writer, run *RunReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "LEAGUE\tNAME\tSEASON\tSTATUS\tTEAMS +/~/!\tVENUES +/~/!\tNOTE")
	for _, l := range run.Leagues {
		status := "ok"
		note := l.Warning
		if !l.Success {
			status = "failed"
			note = l.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			l.ExternalID, l.Name, l.Season, status,
			counts(l.Stats.Team), counts(l.Stats.Venue), note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w,
		"\nrun %s: %d processed, %d succeeded, %d failed (%d new, %d existing)\n"+
			"leagues %s  teams %s  venues %s (skipped %d)\n",
		run.RunID, run.LeaguesProcessed, run.LeaguesSucceeded, run.LeaguesFailed,
		len(run.NewLeagues), len(run.ExistingLeagues),
		counts(run.League), counts(run.Team), counts(run.Venue), run.Venue.Skipped)
	return err
}

func counts(s EntityStats) string {
	return fmt.Sprintf("%d/%d/%d", s.Created, s.Updated, s.Errors)
}
