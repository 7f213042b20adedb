package aleph

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
	"github.com/pumlitsch/vufind-kvo/pkg/cache"
	"github.com/pumlitsch/vufind-kvo/pkg/tabparser"
)

// translatorCacheKey is the fixed key the built translator is stored under.
const translatorCacheKey = "alephTranslator"

// noValue is the placeholder Aleph writes into a table column that carries
// no value; it normalizes to the empty string before keys are built.
const noValue = "##"

// SubLibraryEntry describes one sub-library: its display name and the tab15
// section its item statuses are defined in.
type SubLibraryEntry struct {
	Desc  string `json:"desc"`
	Tab15 string `json:"tab15"`
}

// ItemStatusEntry is one resolved tab15 row. The flag fields keep the raw
// one-letter table values ("Y", "N", "C"). SubLibDesc is filled in during
// lookup, never stored.
type ItemStatusEntry struct {
	Desc       string `json:"desc"`
	Loan       string `json:"loan"`
	Request    string `json:"request"`
	OPAC       string `json:"opac"`
	SubLibDesc string `json:"sub_lib_desc,omitempty"`
}

// Translator resolves Aleph status and collection codes to human-readable
// descriptors using the three parsed configuration tables. It is immutable
// once built and safe for concurrent reads; construction is expensive, so
// instances are shared through LoadTranslator. The maps are exported for
// cache serialization.
type Translator struct {
	Tab15        map[string]ItemStatusEntry `json:"tab15"`
	Tab40        map[string]string          `json:"tab40"`
	SubLibraries map[string]SubLibraryEntry `json:"sub_libraries"`
}

// NewTranslator parses the three configuration tables. Any unreadable table
// is a fatal configuration error.
func NewTranslator(util catalog.UtilConfig) (*Translator, error) {
	decode := newFieldDecoder(util.Charset)

	t := Translator{
		Tab15:        make(map[string]ItemStatusEntry),
		Tab40:        make(map[string]string),
		SubLibraries: make(map[string]SubLibraryEntry),
	}

	err := tabparser.ParseFile(util.Tab15, func(m []string) {
		if len(m) <= 10 {
			return
		}
		no1 := m[2]
		if no1 == noValue {
			no1 = ""
		}
		no2 := m[3]
		if no2 == noValue {
			no2 = ""
		}
		key := strings.TrimSpace(m[1]) + "|" + strings.TrimSpace(no1) + "|" + strings.TrimSpace(no2)
		t.Tab15[strings.TrimSpace(key)] = ItemStatusEntry{
			Desc:    strings.TrimSpace(decode(m[5])),
			Loan:    m[6],
			Request: m[8],
			OPAC:    m[10],
		}
	})
	if err != nil {
		return nil, fmt.Errorf("tab15: %w", err)
	}

	err = tabparser.ParseFile(util.Tab40, func(m []string) {
		if len(m) <= 4 {
			return
		}
		code := strings.TrimSpace(m[1])
		sub := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(m[2]), "#", ""))
		key := strings.TrimSpace(code + "|" + sub)
		t.Tab40[key] = strings.TrimSpace(decode(m[4]))
	})
	if err != nil {
		return nil, fmt.Errorf("tab40: %w", err)
	}

	err = tabparser.ParseFile(util.TabSubLibrary, func(m []string) {
		if len(m) <= 6 {
			return
		}
		t.SubLibraries[strings.TrimSpace(m[1])] = SubLibraryEntry{
			Desc:  strings.TrimSpace(decode(m[5])),
			Tab15: strings.TrimSpace(m[6]),
		}
	})
	if err != nil {
		return nil, fmt.Errorf("tab_sub_library: %w", err)
	}

	return &t, nil
}

// LoadTranslator returns the cached translator when the backend has one, and
// builds and stores it otherwise. Storing is best-effort; the core never
// evicts.
func LoadTranslator(ctx context.Context, store cache.Cache, util catalog.UtilConfig) (*Translator, error) {
	if store != nil {
		var t Translator
		if ok, err := store.Get(ctx, translatorCacheKey, &t); err == nil && ok {
			return &t, nil
		}
	}

	t, err := NewTranslator(util)
	if err != nil {
		return nil, err
	}
	if store != nil {
		_ = store.Set(ctx, translatorCacheKey, t)
	}
	return t, nil
}

// Tab40Translate resolves a collection description, falling back from
// "collection|sublibrary" to the bare "collection|" key. Unknown collections
// yield the empty string.
func (t *Translator) Tab40Translate(collection, subLibrary string) string {
	if desc, ok := t.Tab40[collection+"|"+subLibrary]; ok {
		return desc
	}
	return t.Tab40[collection+"|"]
}

// SubLibraryTranslate resolves a sub-library code.
func (t *Translator) SubLibraryTranslate(code string) (SubLibraryEntry, bool) {
	entry, ok := t.SubLibraries[code]
	return entry, ok
}

// Tab15Translate resolves an item status descriptor for the given
// sub-library, item status and item process status codes. The tab15 section
// comes from the sub-library entry; when the full key misses, the status
// code is blanked for a second attempt. The sub-library description is
// merged into the result whichever branch ran — a double miss still yields
// an entry carrying only that description. An unknown sub-library yields
// nil, which callers must treat as "descriptor unavailable".
func (t *Translator) Tab15Translate(subLibraryCode, statusCode, processStatusCode string) *ItemStatusEntry {
	sub, ok := t.SubLibraries[subLibraryCode]
	if !ok {
		return nil
	}

	entry, ok := t.Tab15[sub.Tab15+"|"+statusCode+"|"+processStatusCode]
	if !ok {
		entry = t.Tab15[sub.Tab15+"||"+processStatusCode]
	}
	entry.SubLibDesc = sub.Desc
	return &entry
}

// newFieldDecoder returns a charset-to-UTF-8 decoder for table description
// columns. Unknown charsets and decode failures keep the raw bytes.
func newFieldDecoder(charset string) func(string) string {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return func(s string) string { return s }
	}
	return func(s string) string {
		out, err := enc.NewDecoder().String(s)
		if err != nil {
			return s
		}
		return out
	}
}
