package aleph

// Typed models for the two Aleph wire formats. The DLF REST server wraps
// every payload in a reply-code/reply-text envelope; the legacy X-Server
// signals failure with an in-band error element instead. Field names mirror
// the z-table oriented element names of the feeds; absent elements decode to
// their zero value.

type dlfEnvelope struct {
	ReplyCode string `xml:"reply-code"`
	ReplyText string `xml:"reply-text"`
}

// record/{base+sysno}/items?view=full

type itemListResponse struct {
	Items []dlfItem `xml:"items>item"`
}

type dlfItem struct {
	Href string `xml:"href,attr"`

	ItemStatusCode        string `xml:"z30-item-status-code"`
	ItemProcessStatusCode string `xml:"z30-item-process-status-code"`
	SubLibraryCode        string `xml:"z30-sub-library-code"`
	CollectionCode        string `xml:"z30-collection-code"`

	// Status is the circulation status text ("On Shelf", "On Hold",
	// "26/Aug/2026;Requested", ...).
	Status string `xml:"status"`

	Info []dlfInfo `xml:"info"`
	Z30  z30       `xml:"z30"`
}

type dlfInfo struct {
	Type    string `xml:"type,attr"`
	Allowed string `xml:"allowed,attr"`
}

type z30 struct {
	ItemStatus      string `xml:"z30-item-status"`
	SubLibrary      string `xml:"z30-sub-library"`
	Collection      string `xml:"z30-collection"`
	CallNo          string `xml:"z30-call-no"`
	CallNo2         string `xml:"z30-call-no-2"`
	InventoryNumber string `xml:"z30-inventory-number"`
	Barcode         string `xml:"z30-barcode"`
	Description     string `xml:"z30-description"`
	NoteOPAC        string `xml:"z30-note-opac"`
}

// patron/{id}/circulationActions/loans?view=full[&type=history]

type loanListResponse struct {
	Loans []dlfLoan `xml:"loans>institution>loan"`
}

type dlfLoan struct {
	Href  string `xml:"href,attr"`
	Renew string `xml:"renew,attr"`

	Fine string `xml:"fine"`

	Z36  z36  `xml:"z36"`
	Z36H z36h `xml:"z36h"`
	Z13  z13  `xml:"z13"`
	Z30  z30  `xml:"z30"`
}

type z36 struct {
	DocNumber string `xml:"z36-doc-number"`
	// The feed really does use an underscore for this one element.
	PickupLocation string `xml:"z36_pickup_location"`
	ItemSequence   string `xml:"z36-item-sequence"`
	Sequence       string `xml:"z36-sequence"`
	DueDate        string `xml:"z36-due-date"`
	LoanDate       string `xml:"z36-loan-date"`
	NoRenewal      string `xml:"z36-no-renewal"`
	LastRenewDate  string `xml:"z36-last-renew-date"`
}

type z36h struct {
	DueDate       string `xml:"z36h-due-date"`
	ReturnedDate  string `xml:"z36h-returned-date"`
	LoanDate      string `xml:"z36h-loan-date"`
	NoRenewal     string `xml:"z36h-no-renewal"`
	LastRenewDate string `xml:"z36h-last-renew-date"`
}

type z13 struct {
	DocNumber string `xml:"z13-doc-number"`
	Title     string `xml:"z13-title"`
	Author    string `xml:"z13-author"`
	ISBNISSN  string `xml:"z13-isbn-issn"`
}

// patron/{id}/circulationActions/cash?view=full

type cashListResponse struct {
	Cash []dlfCash `xml:"cash-transactions>institution>cash"`
}

type dlfCash struct {
	Href string `xml:"href,attr"`

	Z31 z31 `xml:"z31"`
	Z13 z13 `xml:"z13"`
	Z30 z30 `xml:"z30"`
}

type z31 struct {
	Date        string `xml:"z31-date"`
	CreditDebit string `xml:"z31-credit-debit"`
	Sum         string `xml:"z31-sum"`
	Sequence    string `xml:"z31-sequence"`
	Description string `xml:"z31-description"`
}

// patron/{id}/patronInformation/address

type addressResponse struct {
	Address addressInformation `xml:"address-information"`
}

type addressInformation struct {
	Address1   string `xml:"z304-address-1"`
	Address2   string `xml:"z304-address-2"`
	Address3   string `xml:"z304-address-3"`
	Zip        string `xml:"z304-zip"`
	Telephone1 string `xml:"z304-telephone-1"`
	Email      string `xml:"z304-email-address"`
	DateFrom   string `xml:"z304-date-from"`
	DateTo     string `xml:"z304-date-to"`
}

// patron/{id}/patronStatus/registration

type registrationResponse struct {
	Institution registrationInstitution `xml:"institution"`
}

type registrationInstitution struct {
	BorStatus  string `xml:"z305-bor-status"`
	ExpiryDate string `xml:"z305-expiry-date"`
}

// X-Server responses. Every X reply may carry an error element.

type xEnvelope struct {
	Error string `xml:"error"`
}

type borInfoResponse struct {
	Z303 borZ303 `xml:"z303"`
	Z304 borZ304 `xml:"z304"`
	Z305 borZ305 `xml:"z305"`
}

type borZ303 struct {
	ID   string `xml:"z303-id"`
	Name string `xml:"z303-name"`
}

type borZ304 struct {
	Address0  string `xml:"z304-address-0"`
	Address2  string `xml:"z304-address-2"`
	Address3  string `xml:"z304-address-3"`
	Zip       string `xml:"z304-zip"`
	Telephone string `xml:"z304-telephone"`
}

type borZ305 struct {
	BorStatus   string `xml:"z305-bor-status"`
	ExpiryDate  string `xml:"z305-expiry-date"`
	Sum         string `xml:"z305-sum"`
	CreditDebit string `xml:"z305-credit-debit"`
}

type findResponse struct {
	SetNumber string `xml:"set_number"`
	NoRecords string `xml:"no_records"`
}

type presentResponse struct {
	DocNumber string `xml:"record>doc_number"`
}
