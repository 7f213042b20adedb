package catalog

// Holding is one physical or logical item of a bibliographic record,
// normalized for display. Holdings are built fresh per request and keep the
// order items appear in the remote response.
type Holding struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`

	Availability bool `json:"availability"`

	// Status is the human-readable item status description; RawStatus keeps
	// the untranslated availability text the remote system sent.
	Status    string `json:"status"`
	RawStatus string `json:"avail_status"`

	// Location is the sub-library code, LocationText its description.
	Location     string `json:"location"`
	LocationText string `json:"location_text"`
	SubLibDesc   string `json:"sub_lib_desc"`

	CallNumber       string `json:"callnumber"`
	CallNumberSecond string `json:"callnumber_second"`

	// DueDate is already locale-formatted, a configured label for available
	// items, or the keyword "requested".
	DueDate string `json:"duedate"`

	InventoryNumber string   `json:"number"`
	Barcode         string   `json:"barcode"`
	Description     string   `json:"description"`
	Notes           []string `json:"notes,omitempty"`

	Collection     string `json:"collection"`
	CollectionDesc string `json:"collection_desc"`

	IsHoldable bool   `json:"is_holdable"`
	AddLink    bool   `json:"add_link"`
	HoldType   string `json:"holdtype"`
	Reserve    string `json:"reserve"`

	Requested      bool   `json:"requested"`
	Requestability string `json:"requestable"`

	HistoricalCollection bool `json:"historical_collection"`
}
