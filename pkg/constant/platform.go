package constant

const (
	PLATFORM_CREATED  = "Platform created successfully"
	PLATFORM_RESOLVED = "Platform already added"
	ACCOUNTS_SAVED    = "Accounts saved successfully"
	ACCOUNTS_PARTIAL  = "Some accounts could not be saved"
	PAIRS_CLEARED     = "All platform accounts cleared"
)
