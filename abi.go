package goplus

import "encoding/json"

// AbiDecodeRequest is the body of the input decode call. Absent optional
// inputs are sent as JSON null.
type AbiDecodeRequest struct {
	ChainID         string  `json:"chain_id"`
	Data            string  `json:"data"`
	ContractAddress *string `json:"contract_address"`
	Signer          *string `json:"signer"`
	TransactionType *string `json:"transaction_type"`
}

// AbiDecode is the decoded call with its risk annotation.
type AbiDecode struct {
	ContractDescription *string         `json:"contract_description,omitempty"`
	ContractName        string          `json:"contract_name"`
	Data                json.RawMessage `json:"data,omitempty"`
	MaliciousContract   *Flag           `json:"malicious_contract,omitempty"`
	Method              string          `json:"method"`
	Params              []AbiParam      `json:"params"`
	Risk                *string         `json:"risk,omitempty"`
	RiskySignature      *Flag           `json:"risky_signature,omitempty"`
	SignatureDetail     *string         `json:"signature_detail,omitempty"`
}

// AbiParam is one decoded argument. Tuple and struct arguments carry their
// components, which are decoded the same way.
type AbiParam struct {
	AddressInfo *AbiAddressInfo `json:"address_info,omitempty"`
	Input       json.RawMessage `json:"input"`
	Name        string          `json:"name"`
	Type        *string         `json:"type,omitempty"`
	Tuple       []AbiParam      `json:"tuple,omitempty"`
	Struct      []AbiParam      `json:"struct,omitempty"`
}

// InputString returns Input when the remote sent it as a JSON string.
func (p AbiParam) InputString() (string, bool) {
	var s string
	if err := json.Unmarshal(p.Input, &s); err != nil {
		return "", false
	}
	return s, true
}

// Components returns the nested parameters of a tuple or struct argument.
func (p AbiParam) Components() []AbiParam {
	if len(p.Tuple) > 0 {
		return p.Tuple
	}
	return p.Struct
}

// Walk visits p and every nested component depth first.
func (p AbiParam) Walk(fn func(path []string, param AbiParam)) {
	p.walk(nil, fn)
}

func (p AbiParam) walk(parent []string, fn func([]string, AbiParam)) {
	path := append(append([]string(nil), parent...), p.Name)
	fn(path, p)
	for _, c := range p.Components() {
		c.walk(path, fn)
	}
}

type AbiAddressInfo struct {
	ContractName     string `json:"contract_name"`
	IsContract       Flag   `json:"is_contract"`
	MaliciousAddress Flag   `json:"malicious_address"`
	Name             string `json:"name"`
	Standard         string `json:"standard"`
	Symbol           string `json:"symbol"`
}

// AccessTokenRequest is the body of the token exchange call.
type AccessTokenRequest struct {
	AppKey string `json:"app_key"`
	Sign   string `json:"sign"`
	Time   uint64 `json:"time"`
}

// AccessToken is the result of a successful token exchange.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   uint64 `json:"expires_in"`
}
