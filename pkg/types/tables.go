package types

// Standard table names for Vault.GetTable.
const (
	TableProperties  = "properties"
	TableRates       = "rates"
	TableWithdrawals = "withdrawals"
	TableEvents      = "events"
	TableSettings    = "settings"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableProperties,
	TableRates,
	TableWithdrawals,
	TableEvents,
	TableSettings,
}
