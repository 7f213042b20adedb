package aleph

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
	"github.com/pumlitsch/vufind-kvo/pkg/dateconv"
)

// loanFineDescription labels overdue-loan fines in the patron's list.
const loanFineDescription = "zpozdné"

// GetTransactions fetches a patron's loans, historical ones when history is
// set. Overdue is decided by comparing the raw Ymd due date against today in
// the same format; both are fixed-width numeric strings, so the comparison
// is lexicographic.
func (c *Client) GetTransactions(ctx context.Context, patron catalog.Patron, history bool) ([]catalog.Loan, error) {
	params := map[string]string{"view": "full"}
	if history {
		params["type"] = "history"
	}

	var list loanListResponse
	err := c.restDLF(ctx, []string{"patron", patron.ID, "circulationActions", "loans"},
		params, resty.MethodGet, "", &list)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("20060102")

	loans := make([]catalog.Loan, 0, len(list.Loans))
	for _, loan := range list.Loans {
		var rawDue, rawLoaned, rawReturned, rawLastRenew, rawRenewCount string
		if history {
			rawDue = loan.Z36H.DueDate
			rawReturned = loan.Z36H.ReturnedDate
			rawLoaned = loan.Z36H.LoanDate
			rawRenewCount = loan.Z36H.NoRenewal
			rawLastRenew = loan.Z36H.LastRenewDate
		} else {
			rawDue = loan.Z36.DueDate
			rawLoaned = loan.Z36.LoanDate
			rawRenewCount = loan.Z36.NoRenewal
			rawLastRenew = loan.Z36.LastRenewDate
		}

		renewCount, _ := strconv.Atoi(strings.TrimSpace(rawRenewCount))
		reason := catalog.RenewalBlockNone
		if renewCount >= c.cfg.MaxRenewals {
			reason = catalog.RenewalBlockMaxCount
		}

		docNo := loan.Z36.DocNumber

		loans = append(loans, catalog.Loan{
			ID:              docNo,
			ItemID:          itemIDFromHref(loan.Href),
			Location:        loan.Z36.PickupLocation,
			Title:           loan.Z13.Title,
			Author:          loan.Z13.Author,
			ISBN:            loan.Z13.ISBNISSN,
			ReqNum:          docNo + loan.Z36.ItemSequence + loan.Z36.Sequence,
			Barcode:         loan.Z30.Barcode,
			DueDate:         c.parseLoanDate(patron.ID, rawDue),
			LoanDate:        c.parseLoanDate(patron.ID, rawLoaned),
			Returned:        c.parseLoanDate(patron.ID, rawReturned),
			RenewCount:      renewCount,
			NoRenewalReason: reason,
			LastRenew:       c.parseLoanDate(patron.ID, rawLastRenew),
			Renewable:       loan.Renew != "N",
			Fine:            strings.TrimSpace(loan.Fine),
			Overdue:         rawDue < today,
		})
	}

	return loans, nil
}

// GetFines fetches a patron's financial transactions: cash entries sorted
// ascending by transaction sequence with a running balance accumulated in
// that order, and overdue-loan fines listed separately without touching the
// balance. Either group is nil when the remote response had no entries.
func (c *Client) GetFines(ctx context.Context, patron catalog.Patron) (catalog.Fines, error) {
	var cashList cashListResponse
	err := c.restDLF(ctx, []string{"patron", patron.ID, "circulationActions", "cash"},
		map[string]string{"view": "full"}, resty.MethodGet, "", &cashList)
	if err != nil {
		return catalog.Fines{}, err
	}

	bySequence := make(map[string]catalog.Fine, len(cashList.Cash))
	for _, item := range cashList.Cash {
		sum := strings.NewReplacer("(", "", ")", "").Replace(item.Z31.Sum)
		amount, _ := strconv.ParseFloat(strings.TrimSpace(sum), 64)
		amount *= 100

		barcode := item.Z30.Barcode

		bySequence[item.Z31.Sequence] = catalog.Fine{
			Kind:            catalog.FineKindCash,
			ID:              c.barcodeToID(ctx, barcode),
			Title:           item.Z13.Title,
			Barcode:         barcode,
			Amount:          amount,
			TransactionDate: c.displayDate(patron.ID, item.Z31.Date),
			TransactionType: item.Z31.CreditDebit,
			Checkout:        c.parseLoanDate(patron.ID, item.Z31.Date),
			Description:     item.Z31.Description,
			OnlinePay:       true,
		}
	}

	keys := make([]string, 0, len(bySequence))
	for key := range bySequence {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareSequence)

	var cash []catalog.Fine
	balance := 0.0
	for _, key := range keys {
		fine := bySequence[key]
		balance += fine.Amount
		fine.Balance = balance
		cash = append(cash, fine)
	}

	var loanList loanListResponse
	err = c.restDLF(ctx, []string{"patron", patron.ID, "circulationActions", "loans"},
		map[string]string{"view": "full"}, resty.MethodGet, "", &loanList)
	if err != nil {
		return catalog.Fines{}, err
	}

	var loanFines []catalog.Fine
	for _, loan := range loanList.Loans {
		fine, _ := strconv.ParseFloat(strings.TrimSpace(loan.Fine), 64)
		if math.Abs(fine) == 0 {
			continue
		}

		dueDate := loan.Z36.DueDate

		loanFines = append(loanFines, catalog.Fine{
			Kind:            catalog.FineKindLoan,
			ID:              loan.Z13.DocNumber,
			SysNo:           loan.Z13.DocNumber,
			Title:           loan.Z13.Title,
			Barcode:         loan.Z30.Barcode,
			Amount:          math.Abs(fine) * -100,
			TransactionDate: c.displayDate(patron.ID, dueDate),
			Checkout:        c.parseLoanDate(patron.ID, dueDate),
			Description:     loanFineDescription,
			OnlinePay:       false,
		})
	}

	return catalog.Fines{Cash: cash, Loan: loanFines}, nil
}

// compareSequence orders transaction sequence keys ascending, numerically
// when both are numeric strings.
func compareSequence(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na - nb
	}
	return strings.Compare(a, b)
}

// parseLoanDate normalizes a patron-record date to d.m.Y, containing parse
// problems to the single entry.
func (c *Client) parseLoanDate(patronID, raw string) string {
	date, err := parseDate(raw)
	if err != nil {
		c.lg.Warn("unparseable date in patron record", "patron", patronID, "value", raw)
		return ""
	}
	return date
}

// displayDate formats a Ymd value as d-m-Y for transaction listings.
func (c *Client) displayDate(patronID, raw string) string {
	if raw == "" {
		return ""
	}
	date, err := dateconv.Convert("Ymd", "d-m-Y", raw)
	if err != nil {
		c.lg.Warn("unparseable transaction date", "patron", patronID, "value", raw)
		return ""
	}
	return date
}
