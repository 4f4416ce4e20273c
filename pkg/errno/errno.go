package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Business Errors (20000+)
var (
	ErrNodeUnreachable = Errno{Code: 20101, Message: "Node unreachable"}
	ErrWalletNotFound  = Errno{Code: 20201, Message: "Wallet not found"}
	ErrInvalidAddress  = Errno{Code: 20202, Message: "Invalid wallet address"}
	ErrNoPeerAvailable = Errno{Code: 20301, Message: "No peer available"}
	ErrBroadcastFailed = Errno{Code: 20401, Message: "Transaction broadcast failed"}
	ErrUnsignedTx      = Errno{Code: 20402, Message: "Transaction is not signed"}
)
