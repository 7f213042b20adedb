package aleph

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
)

// Fixture tables mirror the column layout of real Aleph tab files: the
// header line marks the field boundaries, data columns are separated by a
// single space.

var (
	tab15Header = "!!!!!-!!-!!-!-" + strings.Repeat("!", 30) + "-!-!-!-!-!-!-" + strings.Repeat("!", 15)
	tab40Header = "!!!!!-!!!!!-!-" + strings.Repeat("!", 30)
	tabSLHeader = "!!!!!-!!!!-!-" + strings.Repeat("!", 20) + "-" + strings.Repeat("!", 30) + "-!!!!!-" + strings.Repeat("!", 8)
)

func tab15Line(section, status, process, lang, desc string, flags ...string) string {
	return fmt.Sprintf("%-5s %-2s %-2s %-1s %-30s %s",
		section, status, process, lang, desc, strings.Join(flags, " "))
}

func tab40Line(code, sub, desc string) string {
	return fmt.Sprintf("%-5s %-5s %-1s %-30s", code, sub, "L", desc)
}

func tabSLLine(sub, short, desc, section string) string {
	return fmt.Sprintf("%-5s %-4s %-1s %-20s %-30s %-5s", sub, "1400", "4", short, desc, section)
}

func writeFixtureTables(t *testing.T) catalog.UtilConfig {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "tab15.lng"), []string{
		"! 1     2  3  4 5                              6 7 8 9 0 1",
		tab15Header,
		tab15Line("KNA50", "01", "##", "L", "Regular loan", "Y", "N", "Y", "N", "Y", "N"),
		tab15Line("KNA50", "73", "##", "L", "Historical collection", "N", "N", "Y", "N", "Y", "N"),
		tab15Line("KNA50", "90", "##", "L", "Internal only", "N", "N", "N", "N", "N", "N"),
		tab15Line("KNA50", "##", "DL", "L", "Being processed", "N", "N", "N", "N", "Y", "N"),
	})

	writeFile(t, filepath.Join(dir, "tab40.lng"), []string{
		"! 1     2     3 4",
		tab40Header,
		tab40Line("LINKA", "KNAV", "Toy collection at KNAV"),
		tab40Line("LINKA", "#####", "Toy collection"),
		tab40Line("DEPOT", "#####", "Depository"),
	})

	writeFile(t, filepath.Join(dir, "tab_sub_library.lng"), []string{
		"! 1     2    3 4                    5                              6",
		tabSLHeader,
		tabSLLine("KNAV", "KNAV", "Main Library", "KNA50"),
		tabSLLine("KNAVD", "KNVD", "Depository Jenstejn", "KNA50"),
		tabSLLine("OTHER", "OTHR", "Partner institute", "KNA50"),
	})

	return catalog.UtilConfig{
		Charset:       "UTF-8",
		Tab15:         filepath.Join(dir, "tab15.lng"),
		Tab40:         filepath.Join(dir, "tab40.lng"),
		TabSubLibrary: filepath.Join(dir, "tab_sub_library.lng"),
	}
}

func writeFile(t *testing.T, path string, lines []string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func fixtureTranslator(t *testing.T) *Translator {
	t.Helper()
	translator, err := NewTranslator(writeFixtureTables(t))
	require.NoError(t, err)
	return translator
}

// serverConfig starts an HTTP test server and returns a Config pointing both
// protocol endpoints at it.
func serverConfig(t *testing.T, handler http.Handler) catalog.Config {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	return catalog.Config{
		Host:              host,
		DLFPort:           port,
		XPort:             port,
		Bibs:              []string{"KNA01"},
		UserAdm:           "KNA50",
		AdmLib:            "KNA50",
		SubLibAdm:         map[string]string{"KNAV": "KNA50"},
		AvailableStatuses: []string{"On Shelf"},
		Language:          "cze",
	}
}

func newTestClient(t *testing.T, cfg catalog.Config, translator *Translator) *Client {
	t.Helper()

	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := New(lg, cfg, translator)
	require.NoError(t, err)
	return client
}
