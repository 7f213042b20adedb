package catalog

// RenewalBlockNone and RenewalBlockMaxCount are the values NoRenewalReason
// can take on a Loan.
const (
	RenewalBlockNone     = ""
	RenewalBlockMaxCount = "norenew_maxcount"
)

// Loan is one current or historical circulation action of a patron.
type Loan struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`

	Location string `json:"location"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`

	ReqNum  string `json:"reqnum"`
	Barcode string `json:"barcode"`

	DueDate  string `json:"duedate"`
	LoanDate string `json:"loandate"`
	Returned string `json:"returned,omitempty"`

	RenewCount      int    `json:"renew_count"`
	NoRenewalReason string `json:"norenew_single_status,omitempty"`
	LastRenew       string `json:"last_renew,omitempty"`
	Renewable       bool   `json:"renewable"`

	// Fine is the raw fine value the loan entry carried, if any.
	Fine    string `json:"fine,omitempty"`
	Overdue bool   `json:"overdue"`
}

// FineKind discriminates cash transactions from overdue-loan fines.
type FineKind string

const (
	FineKindCash FineKind = "cash"
	FineKindLoan FineKind = "loan"
)

// Fine is a single financial transaction of a patron. Amount and Balance are
// minor currency units. Balance accumulates only within the cash group, in
// ascending transaction-sequence order; loan fines never contribute to it.
type Fine struct {
	Kind FineKind `json:"kind"`

	ID      string `json:"id"`
	SysNo   string `json:"sysno,omitempty"`
	Title   string `json:"title"`
	Barcode string `json:"barcode"`

	Amount  float64 `json:"amount"`
	Balance float64 `json:"balance"`

	TransactionDate string `json:"transactiondate"`
	TransactionType string `json:"transactiontype,omitempty"`
	Checkout        string `json:"checkout"`
	Description     string `json:"description"`

	OnlinePay bool `json:"onlinepay"`
}

// Fines groups a patron's financial transactions; a nil slice means the
// group was absent from the remote response.
type Fines struct {
	Cash []Fine `json:"cash,omitempty"`
	Loan []Fine `json:"loan,omitempty"`
}

// Profile is the normalized patron profile. Both retrieval paths (legacy
// X-Server and DLF) fill the shared fields; the credit and barcode fields are
// only known to the X-Server path, street/city only to the DLF one.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`

	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`

	Group  string `json:"group"`
	Expire string `json:"expire"`

	Barcode    string `json:"barcode,omitempty"`
	CreditSum  string `json:"credit_sum,omitempty"`
	CreditSign string `json:"credit_sign,omitempty"`

	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}
