// Package catalog holds the normalized records the ILS client produces and
// the configuration it consumes. Types here are plain data: no transport or
// framework handles are embedded, so record drivers and view code can depend
// on this package alone.
package catalog

import "context"

// DueDatePattern maps a regular expression matched against an item's status
// description to the due-date label displayed instead of a real date. The
// patterns are tried in declared order and the first match wins.
type DueDatePattern struct {
	Pattern string `mapstructure:"pattern"`
	Label   string `mapstructure:"label"`
}

// UtilConfig locates the Aleph configuration tables and names the character
// set their description columns are stored in.
type UtilConfig struct {
	Charset       string `mapstructure:"charset"`
	Tab15         string `mapstructure:"tab15"`
	Tab40         string `mapstructure:"tab40"`
	TabSubLibrary string `mapstructure:"tab_sub_library"`
}

// Config carries the per-installation Aleph connection parameters. Host,
// Bibs, UserAdm, AdmLib, DLFPort, AvailableStatuses and SubLibAdm are
// required; X-Server credentials are optional and switch the client into
// legacy key-value mode for profile lookups when present.
type Config struct {
	Host    string `mapstructure:"host"`
	DLFPort string `mapstructure:"dlfport"`

	// Legacy X-Server access. Leaving WWWUser/WWWPassword empty disables it.
	XPort       string `mapstructure:"xport"`
	WWWUser     string `mapstructure:"wwwuser"`
	WWWPassword string `mapstructure:"wwwpasswd"`

	Bibs    []string `mapstructure:"bib"`
	UserAdm string   `mapstructure:"useradm"`
	AdmLib  string   `mapstructure:"admlib"`

	// SubLibAdm maps a sub-library code to its administrative library.
	SubLibAdm map[string]string `mapstructure:"sublibadm"`

	AvailableStatuses        []string         `mapstructure:"available_statuses"`
	DueDates                 []DueDatePattern `mapstructure:"duedates"`
	MaxRenewals              int              `mapstructure:"max_renewals"`
	DefaultPatronID          string           `mapstructure:"default_patron_id"`
	PreferredPickUpLocations []string         `mapstructure:"preferred_pick_up_locations"`
	QuickAvailability        bool             `mapstructure:"quick_availability"`
	Debug                    bool             `mapstructure:"debug"`

	// Language is sent as the lang query parameter on every DLF request.
	Language string `mapstructure:"language"`

	// TimeoutSeconds bounds every remote call; 0 means no client-side limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// MaxFails configures the circuit breaker; 0 disables it.
	MaxFails uint32 `mapstructure:"max_fails"`

	Util UtilConfig `mapstructure:"util"`
}

// Patron identifies the borrower a patron-scoped operation acts for.
type Patron struct {
	ID      string
	Library string
	Email   string
}

// Client is the ILS operation surface the rest of the application consumes.
type Client interface {
	GetHolding(ctx context.Context, id string, patron *Patron) ([]Holding, error)
	GetTransactions(ctx context.Context, patron Patron, history bool) ([]Loan, error)
	GetFines(ctx context.Context, patron Patron) (Fines, error)
	GetProfile(ctx context.Context, patron Patron) (Profile, error)
}
