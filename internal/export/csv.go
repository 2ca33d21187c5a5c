package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/djb242/inkwell/internal/store"
)

// WriteCSV exports the session log, resolving project ids to titles.
// Unattributed sessions get an empty project column.
func WriteCSV(sessions []store.Session, projectTitles map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Project", "Minutes", "Words", "Notes"}); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{
			s.Date,
			projectTitles[s.ProjectID],
			fmt.Sprintf("%d", s.Minutes),
			fmt.Sprintf("%d", s.Words),
			s.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
