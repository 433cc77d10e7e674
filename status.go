package goplus

// Category groups remote status codes by how a caller should react to them.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySuccess
	CategoryPartial
	CategoryClientInputError
	CategoryAuthError
	CategoryRateLimited
	CategoryServerError
)

// String returns the stable category name.
func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "success"
	case CategoryPartial:
		return "partial"
	case CategoryClientInputError:
		return "client_input_error"
	case CategoryAuthError:
		return "auth_error"
	case CategoryRateLimited:
		return "rate_limited"
	case CategoryServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether the same request may succeed later unchanged.
func (c Category) Retryable() bool {
	return c == CategoryPartial || c == CategoryRateLimited || c == CategoryServerError
}

const (
	StatusComplete         uint32 = 1
	StatusPartial          uint32 = 2
	StatusAddressFormat    uint32 = 2004
	StatusChainUnsupported uint32 = 2018
	StatusNonContract      uint32 = 2020
	StatusNoContractInfo   uint32 = 2021
	StatusNonSupportedID   uint32 = 2022
	StatusDappNotFound     uint32 = 2026
	StatusAbiNotFound      uint32 = 2027
	StatusAbiUnparseable   uint32 = 2028
	StatusAppKeyMissing    uint32 = 4010
	StatusSignatureExpired uint32 = 4011
	StatusWrongSignature   uint32 = 4012
	StatusTokenNotFound    uint32 = 4023
	StatusRequestLimit     uint32 = 4029
	StatusSystemError      uint32 = 5000
	StatusParamError       uint32 = 5006
)

const unknownStatusDescription = "Unknown status code"

// Status is the interpretation of a single remote code.
type Status struct {
	Code        uint32
	Category    Category
	Description string
}

type statusEntry struct {
	category    Category
	description string
}

// Adding a remote code is a change to this table only.
var statusTable = map[uint32]statusEntry{
	StatusComplete:         {CategorySuccess, "Complete data prepared"},
	StatusPartial:          {CategoryPartial, "Partial data obtained. The complete data can be requested again in about 15 seconds."},
	StatusAddressFormat:    {CategoryClientInputError, "Contract address format error!"},
	StatusChainUnsupported: {CategoryClientInputError, "ChainID not supported"},
	StatusNonContract:      {CategoryClientInputError, "Non-contract address"},
	StatusNoContractInfo:   {CategoryClientInputError, "No info for this contract"},
	StatusNonSupportedID:   {CategoryClientInputError, "Non-supported chainId"},
	StatusDappNotFound:     {CategoryClientInputError, "dApp not found"},
	StatusAbiNotFound:      {CategoryClientInputError, "ABI not found"},
	StatusAbiUnparseable:   {CategoryClientInputError, "The ABI not support parsing"},
	StatusAppKeyMissing:    {CategoryAuthError, "App_key not exist"},
	StatusSignatureExpired: {CategoryAuthError, "Signature expiration (the same request parameters cannot be requested more than once)"},
	StatusWrongSignature:   {CategoryAuthError, "Wrong Signature"},
	StatusTokenNotFound:    {CategoryAuthError, "Access token not found"},
	StatusRequestLimit:     {CategoryRateLimited, "Request limit reached"},
	StatusSystemError:      {CategoryServerError, "System error"},
	StatusParamError:       {CategoryServerError, "Param error!"},
}

// Interpret maps any code to its status. Codes outside the table are Unknown.
func Interpret(code uint32) Status {
	entry, ok := statusTable[code]
	if !ok {
		return Status{Code: code, Category: CategoryUnknown, Description: unknownStatusDescription}
	}
	return Status{Code: code, Category: entry.category, Description: entry.description}
}

// Describe returns the human-readable description for code.
func Describe(code uint32) string {
	return Interpret(code).Description
}
