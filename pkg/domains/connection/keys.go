package connection

// Storage keys. Values are JSON documents.
const (
	SelectedAccountsKey = "selectedPlatformAccounts"
	RegistrationPrefix  = "platformRegistration_"
	ConnectionPrefix    = "platformConnection_"
)

// StatusConnected is the status of a completed connect record.
const StatusConnected = "connected"

func registrationKey(platformName string) string {
	return RegistrationPrefix + platformName
}

func connectionKey(platformName string) string {
	return ConnectionPrefix + platformName
}
