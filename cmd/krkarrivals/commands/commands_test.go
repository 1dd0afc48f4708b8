package commands

import (
	"bytes"
	"context"
	"krkarrivals/internal/components/configutil"
	"krkarrivals/internal/components/telemetry"
	"krkarrivals/internal/scrapers/krakowairport"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newBoardServer(t testing.TB, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScrape(t *testing.T) {
	server := newBoardServer(t, http.StatusOK, `<table>
		<tr><th>Czas</th><th>Kierunek</th><th>Lot</th><th>Status</th></tr>
		<tr><td>14:05</td><td>Warszawa</td><td>LO123</td><td>Wylądował</td></tr>
	</table>`)
	path := filepath.Join(t.TempDir(), "arrivals.csv")

	var out bytes.Buffer
	err := scrape(context.Background(), &out, Config{Url: server.URL, Output: path}, telemetry.NewTestAPI())
	require.NoError(t, err)
	require.Equal(t, "Zapisano 1 rekordów do "+path+"\n", out.String())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "czas,kierunek,lot,status\n14:05,Warszawa,LO123,Wylądował\n", string(contents))
}

func TestScrapeNoData(t *testing.T) {
	server := newBoardServer(t, http.StatusOK, `<html><body>Brak lotów</body></html>`)
	path := filepath.Join(t.TempDir(), "arrivals.csv")

	var out bytes.Buffer
	err := scrape(context.Background(), &out, Config{Url: server.URL, Output: path}, telemetry.NewTestAPI())
	require.NoError(t, err)
	require.Equal(t, msgNoData+"\n", out.String())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestScrapeServerError(t *testing.T) {
	server := newBoardServer(t, http.StatusInternalServerError, "oops")
	path := filepath.Join(t.TempDir(), "arrivals.csv")
	original := []byte("czas,kierunek,lot,status\n09:00,Rzym,FR3021,Odwołany\n")
	require.NoError(t, os.WriteFile(path, original, 0644))

	var out bytes.Buffer
	err := scrape(context.Background(), &out, Config{Url: server.URL, Output: path}, telemetry.NewTestAPI())
	require.ErrorIs(t, err, krakowairport.ErrUnexpectedStatus)

	line := out.String()
	require.True(t, strings.HasPrefix(line, "Błąd podczas pobierania danych: "))
	require.Equal(t, 1, strings.Count(line, "\n"))
	require.Contains(t, line, "500")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, contents)
}

func TestScrapeInvalidUrl(t *testing.T) {
	var out bytes.Buffer
	err := scrape(context.Background(), &out, Config{Url: "::", Output: filepath.Join(t.TempDir(), "a.csv")}, telemetry.NewTestAPI())
	require.Error(t, err)
	require.True(t, strings.HasPrefix(out.String(), "Błąd podczas pobierania danych: "))
}

func TestScrapeDebugOutput(t *testing.T) {
	server := newBoardServer(t, http.StatusOK, `<table><tr><td>1</td><td>2</td><td>3</td><td>4</td></tr></table>`)
	dir := t.TempDir()
	debugDir := filepath.Join(dir, "resty")

	var out bytes.Buffer
	err := scrape(context.Background(), &out, Config{
		Url:          server.URL,
		Output:       filepath.Join(dir, "arrivals.csv"),
		DebugHttpDir: debugDir,
	}, telemetry.NewTestAPI())
	require.NoError(t, err)

	entries, err := os.ReadDir(debugDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "krkarrivals.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		url: "https://example.com/przyloty",
		timeout_seconds: 10,
		output: "from-config.csv",
	}`), 0600))
	require.NoError(t, os.WriteFile(configutil.LocalPath(path), []byte(`{ user_agent: "local" }`), 0600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Config{
		Url:            "https://example.com/przyloty",
		UserAgent:      "local",
		TimeoutSeconds: 10,
		Output:         "from-config.csv",
	}, cfg)

	require.Equal(t, krakowairport.ClientOptions{
		Url:       "https://example.com/przyloty",
		UserAgent: "local",
		Timeout:   10 * time.Second,
	}, cfg.clientOptions())

	_, err = loadConfig(filepath.Join(dir, "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigWithFlags(t *testing.T) {
	cfg := Config{Output: "from-config.csv"}

	require.Equal(t, "from-config.csv", cfg.withFlags("", false).Output)
	require.Equal(t, "flag.csv", cfg.withFlags("flag.csv", false).Output)
	require.Equal(t, "", cfg.withFlags("", false).DebugHttpDir)
	require.Equal(t, defaultDebugHttpDir, cfg.withFlags("", true).DebugHttpDir)

	cfg.DebugHttpDir = "custom"
	require.Equal(t, "custom", cfg.withFlags("", true).DebugHttpDir)

	require.Equal(t, krakowairport.ClientOptions{}, Config{}.clientOptions())
}

func TestRenderArrivals(t *testing.T) {
	var out bytes.Buffer
	renderArrivals(&out, []krakowairport.Arrival{
		{Time: "14:05", Destination: "Warszawa", Flight: "LO123", Status: "Wylądował"},
		{Time: "14:20", Destination: "Dublin", Flight: "FR1903", Status: "Opóźniony"},
	})

	rendered := out.String()
	require.Contains(t, rendered, "CZAS")
	require.Contains(t, rendered, "KIERUNEK")
	require.Contains(t, rendered, "Warszawa")
	require.Contains(t, rendered, "FR1903")
	require.Contains(t, rendered, "Opóźniony")
}

func TestOneLine(t *testing.T) {
	require.Equal(t, "fetch: get x: boom", oneLine("fetch: get x:\n  boom\n"))
}
