package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/schedule"
	"github.com/yigit/coursewindow/internal/pkg/helpers"
)

type courseFile struct {
	Title   string         `yaml:"title"`
	Batches []models.Batch `yaml:"timeSlots"`
}

func runCheck(w io.Writer, path, at, tz string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read course file: %w", err)
	}

	var course courseFile
	if err := yaml.Unmarshal(raw, &course); err != nil {
		return fmt.Errorf("failed to parse course file: %w", err)
	}

	loc, err := helpers.LoadLocation(tz, time.UTC)
	if err != nil {
		return err
	}

	now := time.Now()
	if at != "" {
		if now, err = time.Parse(time.RFC3339, at); err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
	}
	now = now.In(loc)

	fmt.Fprintf(w, "%s at %s\n", course.Title, now.Format("Monday 15:04 MST"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tSCHEDULE\tSTATUS")
	for _, st := range schedule.Evaluate(course.Batches, now) {
		status := "locked"
		if st.Accessible {
			status = "open"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", st.BatchName, schedule.ScheduleLabel(st.Batch), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if schedule.IsAccessible(course.Batches, now) {
		fmt.Fprintln(w, "course is accessible")
	} else {
		fmt.Fprintln(w, "course is locked")
	}
	return nil
}
