package aleph

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
)

const (
	// historicalStatusCode marks items of the historical collection, which
	// are never holdable.
	historicalStatusCode = "73"

	// requestedDueDate is the semantic due-date keyword for items that are
	// on hold or requested.
	requestedDueDate = "requested"
)

// The two institutional sub-libraries whose items may be requested at all.
func isInstitutional(subLibraryCode string) bool {
	return subLibraryCode == "KNAV" || subLibraryCode == "KNAVD"
}

// Due dates embedded in the circulation status text, with and without a
// trailing note ("26/Aug/2026;Requested").
var (
	statusDateWithNote = regexp.MustCompile(`([0-9]*/[a-zA-Z]*/[0-9]*);([a-zA-Z ]*)`)
	statusDate         = regexp.MustCompile(`([0-9]*/[a-zA-Z]*/[0-9]*)`)
)

// GetHolding fetches and normalizes the items of one bibliographic record,
// in response order. Supplying a patron (or configuring a default patron id)
// lets the server compute per-item hold eligibility. Per-item extraction
// problems are contained to the item; only a fault of the items request
// itself fails the call.
func (c *Client) GetHolding(ctx context.Context, id string, patron *catalog.Patron) ([]catalog.Holding, error) {
	base, sysNo := c.parseID(id)
	resource := base + sysNo

	params := map[string]string{"view": "full"}
	switch {
	case patron != nil && patron.ID != "":
		params["patron"] = patron.ID
	case c.cfg.DefaultPatronID != "":
		params["patron"] = c.cfg.DefaultPatronID
	}

	var list itemListResponse
	if err := c.restDLF(ctx, []string{"record", resource, "items"}, params, resty.MethodGet, "", &list); err != nil {
		return nil, err
	}

	holdings := make([]catalog.Holding, 0, len(list.Items))
	for _, item := range list.Items {
		statusCode := item.ItemStatusCode
		processStatusCode := item.ItemProcessStatusCode
		subLibraryCode := item.SubLibraryCode

		var descriptor *ItemStatusEntry
		if c.translator != nil {
			descriptor = c.translator.Tab15Translate(subLibraryCode, statusCode, processStatusCode)
			if descriptor == nil {
				c.lg.Error("sub-library missing from tab_sub_library", "code", subLibraryCode)
				descriptor = &ItemStatusEntry{}
			}
		} else {
			descriptor = &ItemStatusEntry{OPAC: "Y", Request: "C"}
		}
		// The raw z30 fields always win over the table descriptions.
		descriptor.Desc = item.Z30.ItemStatus
		descriptor.SubLibDesc = item.Z30.SubLibrary

		if descriptor.OPAC != "Y" {
			continue
		}

		collection := item.Z30.Collection
		collectionDesc := collection
		if c.translator != nil {
			collectionDesc = c.translator.Tab40Translate(item.CollectionCode, subLibraryCode)
		}

		status := item.Status
		availability := slices.Contains(c.cfg.AvailableStatuses, status)

		addLink := descriptor.Request == "Y" && !availability
		if patron != nil {
			addLink = holdRequestAllowed(item.Info)
		}

		historical := statusCode == historicalStatusCode && isInstitutional(subLibraryCode)

		requested := false
		dueDate := ""
		if m := statusDateWithNote.FindStringSubmatch(status); m != nil {
			dueDate = c.parseItemDate(id, m[1])
			requested = strings.TrimSpace(m[2]) == "Requested"
		} else if m := statusDate.FindStringSubmatch(status); m != nil {
			dueDate = c.parseItemDate(id, m[1])
		}

		if availability {
			if len(c.dueDates) > 0 {
				for _, rule := range c.dueDates {
					if rule.re.MatchString(descriptor.Desc) {
						dueDate = rule.label
						break
					}
				}
			} else {
				dueDate = descriptor.Desc
			}
		} else if status == "On Hold" || status == "Requested" {
			dueDate = requestedDueDate
		}

		requestability := "N"
		if isInstitutional(subLibraryCode) {
			requestability = descriptor.Request
		}
		if historical {
			requestability = "N"
		}

		var notes []string
		if note := item.Z30.NoteOPAC; note != "" {
			notes = []string{note}
		}

		holdings = append(holdings, catalog.Holding{
			ID:                   id,
			ItemID:               itemIDFromHref(item.Href),
			Availability:         availability,
			Status:               descriptor.Desc,
			RawStatus:            status,
			Location:             subLibraryCode,
			LocationText:         item.Z30.SubLibrary,
			SubLibDesc:           descriptor.SubLibDesc,
			CallNumber:           item.Z30.CallNo,
			CallNumberSecond:     item.Z30.CallNo2,
			DueDate:              dueDate,
			InventoryNumber:      item.Z30.InventoryNumber,
			Barcode:              item.Z30.Barcode,
			Description:          item.Z30.Description,
			Notes:                notes,
			Collection:           collection,
			CollectionDesc:       collectionDesc,
			IsHoldable:           requestability != "N",
			AddLink:              addLink,
			HoldType:             "hold",
			Reserve:              "N",
			Requested:            requested,
			Requestability:       requestability,
			HistoricalCollection: historical,
		})
	}

	return holdings, nil
}

// parseItemDate normalizes a due date pulled out of a status string. A shape
// the converter does not know is logged and shown as no due date rather than
// failing the whole holdings list.
func (c *Client) parseItemDate(id, raw string) string {
	date, err := parseDate(raw)
	if err != nil {
		c.lg.Warn("unparseable due date in item status", "id", id, "value", raw)
		return ""
	}
	return date
}

func holdRequestAllowed(infos []dlfInfo) bool {
	for _, info := range infos {
		if info.Type == "HoldRequest" {
			return info.Allowed == "Y"
		}
	}
	return false
}

func itemIDFromHref(href string) string {
	return href[strings.LastIndex(href, "/")+1:]
}
