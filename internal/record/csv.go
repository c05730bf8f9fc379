package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/yclai/readquest/internal/quiz"
)

// header is the fixed column order of the record file.
var header = []string{
	"class", "seat", "name", "timestamp", "level",
	"choice_score", "open_score", "total", "comment",
}

// timestampLayout matches the minute-resolution format of the report.
const timestampLayout = "2006-01-02 15:04"

// CSVSink appends attempt rows to a CSV file. The file is created with
// a header row on first write; later writes append rows only. There is
// no update or delete path.
type CSVSink struct {
	path string

	// mu serializes appends within this process. Each append is a
	// single buffered write to an O_APPEND descriptor, so concurrent
	// processes cannot interleave partial rows either.
	mu sync.Mutex
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Path returns the backing file path.
func (s *CSVSink) Path() string {
	return s.path
}

// Append writes one attempt row, creating the file with a header first
// if needed.
func (s *CSVSink) Append(a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat record file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := []string{
		a.Class,
		a.Seat,
		a.Name,
		a.Timestamp.Format(timestampLayout),
		string(a.Level),
		strconv.Itoa(a.ChoiceScore),
		strconv.Itoa(a.OpenScore),
		strconv.Itoa(a.Total),
		a.Comment,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write record row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return nil
}

// ReadAll returns every stored attempt in submission order. A missing
// file is an empty report, not an error.
func (s *CSVSink) ReadAll() ([]Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []Attempt
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record row: %w", err)
		}
		out = append(out, rowToAttempt(row))
	}
	return out, nil
}

// Export streams the raw CSV file to w, for the report download.
func (s *CSVSink) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

func rowToAttempt(row []string) Attempt {
	a := Attempt{
		Class:   row[0],
		Seat:    row[1],
		Name:    row[2],
		Level:   quiz.Level(row[4]),
		Comment: row[8],
	}
	if t, err := time.Parse(timestampLayout, row[3]); err == nil {
		a.Timestamp = t
	}
	a.ChoiceScore, _ = strconv.Atoi(row[5])
	a.OpenScore, _ = strconv.Atoi(row[6])
	a.Total, _ = strconv.Atoi(row[7])
	return a
}
