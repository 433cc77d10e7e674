package goplus

// PhishingSite is the phishing verdict for a URL.
type PhishingSite struct {
	PhishingSite            Flag                      `json:"phishing_site"`
	WebsiteContractSecurity []WebsiteContractSecurity `json:"website_contract_security"`
}

// WebsiteContractSecurity is a contract the site interacts with. NftRisk is
// only present for NFT contracts.
type WebsiteContractSecurity struct {
	AddressRisk  []string `json:"address_risk"`
	Contract     string   `json:"contract"`
	IsContract   Flag     `json:"is_contract"`
	IsOpenSource Flag     `json:"is_open_source"`
	NftRisk      *NftData `json:"nft_risk,omitempty"`
	Standard     string   `json:"standard"`
}

type NftData struct {
	NftOpenSource           Flag              `json:"nft_open_source"`
	NftProxy                Flag              `json:"nft_proxy"`
	OversupplyMinting       Flag              `json:"oversupply_minting"`
	PrivilegedBurn          *PrivilegedAction `json:"privileged_burn,omitempty"`
	PrivilegedMinting       *PrivilegedAction `json:"privileged_minting,omitempty"`
	RestrictedApproval      Flag              `json:"restricted_approval"`
	SelfDestruct            *PrivilegedAction `json:"self_destruct,omitempty"`
	TransferWithoutApproval *PrivilegedAction `json:"transfer_without_approval,omitempty"`
}

// RugPullRisk holds the rug-pull indicators of a contract.
type RugPullRisk struct {
	ApprovalAbuse     Flag   `json:"approval_abuse"`
	Blacklist         Flag   `json:"blacklist"`
	ContractName      string `json:"contract_name"`
	IsOpenSource      Flag   `json:"is_open_source"`
	IsProxy           Flag   `json:"is_proxy"`
	Owner             *Owner `json:"owner,omitempty"`
	PrivilegeWithdraw Flag   `json:"privilege_withdraw"`
	Selfdestruct      Flag   `json:"selfdestruct"`
	WithdrawMissing   Flag   `json:"withdraw_missing"`
}
