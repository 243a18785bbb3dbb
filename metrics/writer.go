package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under root.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteDecisions(records []DecisionMetric) error {
	header := []string{"step", "player", "index", "rank", "score", "duration", "error"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		errText := ""
		if record.Err != nil {
			errText = record.Err.Error()
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Index),
			strconv.Itoa(record.Rank),
			strconv.FormatFloat(record.Score, 'g', -1, 64),
			record.Duration.String(),
			errText,
		})
	}
	return w.write("decisions.csv", header, rows)
}

func (w *Writer) WriteSummary(summary Summary) error {
	header := []string{"decisions", "fallbacks", "invalid_scores", "no_valid_moves", "duration"}
	row := []string{
		strconv.Itoa(summary.Decisions),
		strconv.Itoa(summary.Fallbacks),
		strconv.Itoa(summary.InvalidScores),
		strconv.Itoa(summary.NoValidMoves),
		summary.Duration.String(),
	}
	return w.write("summary.csv", header, [][]string{row})
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
