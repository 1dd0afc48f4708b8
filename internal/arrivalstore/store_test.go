package arrivalstore

import (
	"encoding/csv"
	"krkarrivals/internal/scrapers/krakowairport"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func readLines(t testing.TB, path string) []string {
	t.Helper()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(contents), "\n"), "\n")
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	store := New(path)

	err := store.Append([]krakowairport.Arrival{
		{Time: "14:05", Destination: "Warszawa", Flight: "LO123", Status: "Wylądował"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"czas,kierunek,lot,status",
		"14:05,Warszawa,LO123,Wylądował",
	}, readLines(t, path))
}

func TestAppendExistingFileSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	store := New(path)

	first := []krakowairport.Arrival{
		{Time: "14:05", Destination: "Warszawa", Flight: "LO123", Status: "Wylądował"},
	}
	second := []krakowairport.Arrival{
		{Time: "14:20", Destination: "Dublin", Flight: "FR1903", Status: "Opóźniony"},
		{Time: "14:05", Destination: "Warszawa", Flight: "LO123", Status: "Wylądował"},
	}
	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	// rows are never deduplicated
	require.Equal(t, []string{
		"czas,kierunek,lot,status",
		"14:05,Warszawa,LO123,Wylądował",
		"14:20,Dublin,FR1903,Opóźniony",
		"14:05,Warszawa,LO123,Wylądował",
	}, readLines(t, path))
}

func TestAppendToFileWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	require.NoError(t, os.WriteFile(path, []byte("09:00,Rzym,FR3021,Odwołany\n"), 0644))

	err := New(path).Append([]krakowairport.Arrival{
		{Time: "10:00", Destination: "Oslo", Flight: "DY1046", Status: "Planowy"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"09:00,Rzym,FR3021,Odwołany",
		"10:00,Oslo,DY1046,Planowy",
	}, readLines(t, path))
}

func TestAppendQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	store := New(path)

	err := store.Append([]krakowairport.Arrival{
		{Time: "15:00", Destination: "Londyn, Stansted", Flight: "FR1234", Status: `Status "B"`},
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"czas,kierunek,lot,status",
		`15:00,"Londyn, Stansted",FR1234,"Status ""B"""`,
	}, readLines(t, path))
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	store := New(path)

	records := []krakowairport.Arrival{
		{Time: "14:05", Destination: "Warszawa", Flight: "LO123", Status: "Wylądował"},
		{Time: "15:00", Destination: "Londyn, Stansted", Flight: "FR1234", Status: `"Opóźniony"`},
		{Time: "16:10", Destination: "Tel Awiw\nBen Gurion", Flight: "LY5151", Status: ""},
		{Time: "", Destination: "", Flight: "", Status: ""},
	}
	require.NoError(t, store.Append(records[:2]))
	require.NoError(t, store.Append(records[2:]))

	read, err := store.ReadAll()
	require.NoError(t, err)
	if diff := cmp.Diff(records, read); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	require.Equal(t, Header, rows[0])
}

func TestAppendEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	require.NoError(t, New(path).Append(nil))
	require.Equal(t, []string{"czas,kierunek,lot,status"}, readLines(t, path))
}

func TestAppendFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "arrivals.csv")
	err := New(path).Append([]krakowairport.Arrival{{Time: "14:05"}})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestReadAllMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "arrivals.csv")).ReadAll()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadAllMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	require.NoError(t, os.WriteFile(path, []byte("czas,kierunek,lot,status\n14:05,Warszawa\n"), 0644))

	_, err := New(path).ReadAll()
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	require.Equal(t, DefaultPath, New("").Path())
	require.Equal(t, "out.csv", New("out.csv").Path())
}
