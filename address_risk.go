package goplus

import "strings"

// AddressRisk is the malicious-address record.
//
// ContractAddress is absent when no chain was specified, and may be absent or
// empty on the first call for a fresh address while the remote queries a block explorer;
// asking again roughly five seconds later usually fills it in.
type AddressRisk struct {
	BlacklistDoubt                    Flag   `json:"blacklist_doubt"`
	BlackmailActivities               Flag   `json:"blackmail_activities"`
	ContractAddress                   *Flag  `json:"contract_address,omitempty"`
	Cybercrime                        Flag   `json:"cybercrime"`
	DarkwebTransactions               Flag   `json:"darkweb_transactions"`
	DataSource                        string `json:"data_source"`
	FakeKYC                           Flag   `json:"fake_kyc"`
	FinancialCrime                    Flag   `json:"financial_crime"`
	HoneypotRelatedAddress            Flag   `json:"honeypot_related_address"`
	MaliciousMiningActivities         Flag   `json:"malicious_mining_activities"`
	Mixer                             Flag   `json:"mixer"`
	MoneyLaundering                   Flag   `json:"money_laundering"`
	NumberOfMaliciousContractsCreated string `json:"number_of_malicious_contracts_created"`
	PhishingActivities                Flag   `json:"phishing_activities"`
	Sanctioned                        Flag   `json:"sanctioned"`
	StealingAttack                    Flag   `json:"stealing_attack"`
	FakeStandardToken                 *Flag  `json:"fake_standard_token,omitempty"`
	FakeToken                         *Flag  `json:"fake_token,omitempty"`
	GasAbuse                          *Flag  `json:"gas_abuse,omitempty"`
}

// HasContractAddress reports whether the chain-specific contract flag has been resolved.
// An empty string counts as unresolved.
func (a AddressRisk) HasContractAddress() bool {
	return a.ContractAddress != nil && strings.TrimSpace(a.ContractAddress.String()) != ""
}
