package goplus

// ApprovalV1 is the legacy per-chain contract approval risk record.
type ApprovalV1 struct {
	ContractName      *string       `json:"contract_name,omitempty"`
	CreatorAddress    *string       `json:"creator_address,omitempty"`
	DeployedTime      *uint64       `json:"deployed_time,omitempty"`
	DoubtList         Flag          `json:"doubt_list"`
	IsContract        Flag          `json:"is_contract"`
	IsOpenSource      *Flag         `json:"is_open_source,omitempty"`
	IsProxy           *Flag         `json:"is_proxy,omitempty"`
	MaliciousBehavior []string      `json:"malicious_behavior"`
	Tag               *string       `json:"tag,omitempty"`
	TrustList         Flag          `json:"trust_list"`
	ContractScan      ContractScan  `json:"contract_scan"`
	RiskyApproval     RiskyApproval `json:"risky_approval"`
}

type ContractScan struct {
	Owner             *Owner `json:"owner,omitempty"`
	PrivilegeWithdraw *Flag  `json:"privilege_withdraw,omitempty"`
	WithdrawMissing   *Flag  `json:"withdraw_missing,omitempty"`
	Blacklist         *Flag  `json:"blacklist,omitempty"`
	Selfdestruct      *Flag  `json:"selfdestruct,omitempty"`
	ApprovalAbuse     *Flag  `json:"approval_abuse,omitempty"`
}

// Owner identifies the privileged owner of a contract. Every field may be absent.
type Owner struct {
	OwnerName    *string `json:"owner_name,omitempty"`
	OwnerAddress *string `json:"owner_address,omitempty"`
	OwnerType    *string `json:"owner_type,omitempty"`
}

type RiskyApproval struct {
	Value Flag   `json:"value"`
	Risk  string `json:"risk"`
}

// ApprovalV2 is one token (or collection) held by the queried address
// together with every contract it has approved.
type ApprovalV2 struct {
	ApprovedList      []ApprovedContract `json:"approved_list"`
	Balance           string             `json:"balance"`
	ChainID           string             `json:"chain_id"`
	Decimals          uint32             `json:"decimals"`
	IsOpenSource      Flag               `json:"is_open_source"`
	MaliciousAddress  Flag               `json:"malicious_address"`
	MaliciousBehavior []string           `json:"malicious_behavior,omitempty"`
	TokenAddress      string             `json:"token_address"`
	TokenName         string             `json:"token_name"`
	TokenSymbol       string             `json:"token_symbol"`
}

type ApprovedContract struct {
	AddressInfo         ApprovalAddressInfo `json:"address_info"`
	ApprovedAmount      string              `json:"approved_amount"`
	ApprovedContract    string              `json:"approved_contract"`
	ApprovedTime        uint64              `json:"approved_time"`
	Hash                string              `json:"hash"`
	InitialApprovalHash string              `json:"initial_approval_hash"`
	InitialApprovalTime uint64              `json:"initial_approval_time"`
	ApprovedForAll      *Flag               `json:"approved_for_all,omitempty"`
	ApprovedTokenID     *string             `json:"approved_token_id,omitempty"`
}

type ApprovalAddressInfo struct {
	ContractName      *string  `json:"contract_name,omitempty"`
	CreatorAddress    string   `json:"creator_address"`
	DeployedTime      uint64   `json:"deployed_time"`
	DoubtList         Flag     `json:"doubt_list"`
	IsContract        Flag     `json:"is_contract"`
	IsOpenSource      Flag     `json:"is_open_source"`
	MaliciousBehavior []string `json:"malicious_behavior,omitempty"`
	Tag               *string  `json:"tag,omitempty"`
	TrustList         Flag     `json:"trust_list"`
}
