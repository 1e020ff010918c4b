package constant

const (
	INVALID_REQUEST      = "Invalid request payload"
	SOMETHING_WENT_WRONG = "something went wrong"
	DELETED              = "Deleted successfully"
)
