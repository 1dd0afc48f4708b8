package arrivalstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"krkarrivals/internal/scrapers/krakowairport"
	"os"
	"slices"
)

const DefaultPath = "arrivals.csv"

// Header is the first row of every file created by Store.
var Header = []string{"czas", "kierunek", "lot", "status"}

// Store is an append-only CSV file of arrivals.
//
// There is no locking, two processes appending to the same file at once may
// interleave rows.
type Store struct {
	path string
}

// New creates a Store backed by the file at `path`, an empty path means DefaultPath.
func New(path string) Store {
	if path == "" {
		path = DefaultPath
	}
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

func (s Store) exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Append writes one row per record at the end of the file, creating it if
// needed. The header is only written when the file did not exist beforehand.
func (s Store) Append(records []krakowairport.Arrival) (err error) {
	exists, err := s.exists()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", s.path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if !exists {
		err = writer.Write(Header)
		if err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, record := range records {
		err = writer.Write(record.Row())
		if err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	err = writer.Error()
	if err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}

// ReadAll reads every arrival in the file, skipping the header row.
func (s Store) ReadAll() ([]krakowairport.Arrival, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = krakowairport.FieldCount

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) > 0 && slices.Equal(rows[0], Header) {
		rows = rows[1:]
	}

	arrivals := make([]krakowairport.Arrival, 0, len(rows))
	for i, row := range rows {
		arrival, err := krakowairport.ArrivalFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: %w", s.path, i+1, err)
		}
		arrivals = append(arrivals, arrival)
	}
	return arrivals, nil
}
