package aleph

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
)

// GetProfile fetches the normalized patron profile. The retrieval path is
// fixed by the connection mode: installations with X-Server credentials use
// the legacy bor-info lookup, everything else merges the two DLF patron
// information calls. Both paths fill the same normalized field set.
func (c *Client) GetProfile(ctx context.Context, patron catalog.Patron) (catalog.Profile, error) {
	if c.mode == legacyKeyValue {
		return c.getProfileX(ctx, patron)
	}
	return c.getProfileDLF(ctx, patron)
}

func (c *Client) getProfileX(ctx context.Context, patron catalog.Patron) (catalog.Profile, error) {
	library := patron.Library
	if library == "" {
		library = c.cfg.UserAdm
	}

	var bor borInfoResponse
	err := c.xRequest(ctx, "bor-info", map[string]string{
		"loans":   "N",
		"cash":    "N",
		"hold":    "N",
		"library": library,
		"bor_id":  patron.ID,
	}, true, &bor)
	if err != nil {
		return catalog.Profile{}, err
	}

	lastName := bor.Z303.Name
	firstName := ""
	if name := strings.SplitN(bor.Z303.Name, ",", 2); len(name) == 2 {
		lastName, firstName = name[0], name[1]
	}

	creditSign := bor.Z305.CreditDebit
	if creditSign == "" {
		// Absent credit-debit markers default to credit. Documented product
		// decision, see DESIGN.md.
		creditSign = "C"
	}

	expire, err := parseDate(bor.Z305.ExpiryDate)
	if err != nil {
		return catalog.Profile{}, fmt.Errorf("patron %s expiry date: %w", patron.ID, err)
	}

	return catalog.Profile{
		ID:         bor.Z303.ID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      patron.Email,
		Address1:   bor.Z304.Address2,
		Address2:   bor.Z304.Address3,
		Zip:        bor.Z304.Zip,
		Phone:      bor.Z304.Telephone,
		Group:      bor.Z305.BorStatus,
		Barcode:    bor.Z304.Address0,
		Expire:     expire,
		CreditSum:  bor.Z305.Sum,
		CreditSign: creditSign,
	}, nil
}

func (c *Client) getProfileDLF(ctx context.Context, patron catalog.Patron) (catalog.Profile, error) {
	var addr addressResponse
	err := c.restDLF(ctx, []string{"patron", patron.ID, "patronInformation", "address"},
		nil, resty.MethodGet, "", &addr)
	if err != nil {
		return catalog.Profile{}, err
	}

	// Address line 1 holds "LASTNAME FIRSTNAME"; only the second token is
	// the first name.
	address := addr.Address
	lastName := address.Address1
	firstName := ""
	if parts := strings.Split(address.Address1, " "); len(parts) > 1 {
		lastName, firstName = parts[0], parts[1]
	}

	var reg registrationResponse
	err = c.restDLF(ctx, []string{"patron", patron.ID, "patronStatus", "registration"},
		nil, resty.MethodGet, "", &reg)
	if err != nil {
		return catalog.Profile{}, err
	}

	expire, err := parseDate(reg.Institution.ExpiryDate)
	if err != nil {
		return catalog.Profile{}, fmt.Errorf("patron %s expiry date: %w", patron.ID, err)
	}

	return catalog.Profile{
		ID:        patron.ID,
		FirstName: firstName,
		LastName:  lastName,
		Street:    address.Address2,
		City:      address.Address3,
		Zip:       address.Zip,
		Phone:     address.Telephone1,
		Email:     address.Email,
		DateFrom:  address.DateFrom,
		DateTo:    address.DateTo,
		Group:     reg.Institution.BorStatus,
		Expire:    expire,
	}, nil
}
