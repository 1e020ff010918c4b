package constant

const (
	CONNECTION_STARTED = "Connecting account"
	DATA_EXTRACTED     = "Data extracted successfully"
	PLATFORM_REQUIRED  = "platform is required"
)
