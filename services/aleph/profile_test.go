package aleph

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
)

const addressXML = `<?xml version="1.0" encoding="UTF-8"?>
<get-pat-adrs>
  <reply-code>0000</reply-code>
  <reply-text>ok</reply-text>
  <address-information>
    <z304-address-1>NOVAK JAN</z304-address-1>
    <z304-address-2>Narodni 3</z304-address-2>
    <z304-address-3>Praha</z304-address-3>
    <z304-zip>11000</z304-zip>
    <z304-telephone-1>+420123456789</z304-telephone-1>
    <z304-email-address>jan.novak@example.com</z304-email-address>
    <z304-date-from>20250101</z304-date-from>
    <z304-date-to>20261231</z304-date-to>
  </address-information>
</get-pat-adrs>`

const registrationXML = `<?xml version="1.0" encoding="UTF-8"?>
<get-pat-reg>
  <reply-code>0000</reply-code>
  <reply-text>ok</reply-text>
  <institution>
    <z305-bor-status>04</z305-bor-status>
    <z305-expiry-date>20261231</z305-expiry-date>
  </institution>
</get-pat-reg>`

const borInfoXML = `<?xml version="1.0" encoding="UTF-8"?>
<bor-info>
  <z303>
    <z303-id>PAT-1</z303-id>
    <z303-name>Novak,Jan</z303-name>
  </z303>
  <z304>
    <z304-address-0>2610099999</z304-address-0>
    <z304-address-2>Narodni 3</z304-address-2>
    <z304-address-3>Praha</z304-address-3>
    <z304-zip>11000</z304-zip>
    <z304-telephone>+420123456789</z304-telephone>
  </z304>
  <z305>
    <z305-bor-status>04</z305-bor-status>
    <z305-expiry-date>20270101</z305-expiry-date>
    <z305-sum>12.50</z305-sum>
  </z305>
</bor-info>`

func TestGetProfileDLF(t *testing.T) {
	cfg := serverConfig(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/registration/") {
			io.WriteString(w, registrationXML)
			return
		}
		io.WriteString(w, addressXML)
	}))
	client := newTestClient(t, cfg, nil)

	profile, err := client.GetProfile(context.Background(), catalog.Patron{ID: "PAT-1"})
	require.NoError(t, err)

	assert.Equal(t, "PAT-1", profile.ID)
	assert.Equal(t, "NOVAK", profile.LastName)
	assert.Equal(t, "JAN", profile.FirstName)
	assert.Equal(t, "Narodni 3", profile.Street)
	assert.Equal(t, "Praha", profile.City)
	assert.Equal(t, "11000", profile.Zip)
	assert.Equal(t, "+420123456789", profile.Phone)
	assert.Equal(t, "jan.novak@example.com", profile.Email)
	assert.Equal(t, "20250101", profile.DateFrom)
	assert.Equal(t, "20261231", profile.DateTo)
	assert.Equal(t, "04", profile.Group)
	assert.Equal(t, "31.12.2026", profile.Expire)
}

func TestGetProfileX(t *testing.T) {
	var gotQuery map[string]string
	cfg := serverConfig(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		io.WriteString(w, borInfoXML)
	}))
	cfg.WWWUser = "www"
	cfg.WWWPassword = "secret"
	client := newTestClient(t, cfg, nil)

	profile, err := client.GetProfile(context.Background(), catalog.Patron{ID: "PAT-1", Email: "jan.novak@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "bor-info", gotQuery["op"])
	assert.Equal(t, "www", gotQuery["user_name"])
	assert.Equal(t, "secret", gotQuery["user_password"])
	// Patrons without a library fall back to the configured ADM base.
	assert.Equal(t, "KNA50", gotQuery["library"])

	assert.Equal(t, "PAT-1", profile.ID)
	assert.Equal(t, "Novak", profile.LastName)
	assert.Equal(t, "Jan", profile.FirstName)
	assert.Equal(t, "jan.novak@example.com", profile.Email)
	assert.Equal(t, "Narodni 3", profile.Address1)
	assert.Equal(t, "Praha", profile.Address2)
	assert.Equal(t, "11000", profile.Zip)
	assert.Equal(t, "+420123456789", profile.Phone)
	assert.Equal(t, "04", profile.Group)
	assert.Equal(t, "2610099999", profile.Barcode)
	assert.Equal(t, "01.01.2027", profile.Expire)
	assert.Equal(t, "12.50", profile.CreditSum)
	// A missing credit-debit marker reads as credit.
	assert.Equal(t, "C", profile.CreditSign)
}

func TestBarcodeToID(t *testing.T) {
	cfg := serverConfig(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("op") {
		case "find":
			if r.URL.Query().Get("request") == "BAR=2610012345" {
				io.WriteString(w, `<find><set_number>000042</set_number><no_records>000000001</no_records></find>`)
				return
			}
			io.WriteString(w, `<find><error>empty set</error></find>`)
		case "present":
			io.WriteString(w, `<present><record><doc_number>000123</doc_number></record></present>`)
		}
	}))
	cfg.WWWUser = "www"
	cfg.WWWPassword = "secret"
	client := newTestClient(t, cfg, nil)

	assert.Equal(t, "000123", client.barcodeToID(context.Background(), "2610012345"))
	// Unknown barcodes resolve softly to no id.
	assert.Equal(t, "", client.barcodeToID(context.Background(), "9999999999"))
}
