package goplus

import "encoding/json"

// NftRisk is the NFT collection security record. Prices and volumes keep the
// remote's numeric text.
type NftRisk struct {
	AveragePrice24h         json.Number       `json:"average_price_24h"`
	CreateBlockNumber       *uint64           `json:"create_block_number,omitempty"`
	CreatorAddress          *string           `json:"creator_address,omitempty"`
	DiscordURL              *string           `json:"discord_url,omitempty"`
	GithubURL               *string           `json:"github_url,omitempty"`
	HighestPrice            json.Number       `json:"highest_price"`
	LowestPrice24h          json.Number       `json:"lowest_price_24h"`
	MaliciousNftContract    Flag              `json:"malicious_nft_contract"`
	MediumURL               *string           `json:"medium_url,omitempty"`
	MetadataFrozen          *Flag             `json:"metadata_frozen,omitempty"`
	NftAddress              string            `json:"nft_address"`
	NftDescription          *string           `json:"nft_description,omitempty"`
	NftErc                  string            `json:"nft_erc"`
	NftItems                json.Number       `json:"nft_items"`
	NftName                 string            `json:"nft_name"`
	NftOpenSource           Flag              `json:"nft_open_source"`
	NftOwnerNumber          json.Number       `json:"nft_owner_number"`
	NftProxy                *Flag             `json:"nft_proxy,omitempty"`
	NftSymbol               *string           `json:"nft_symbol,omitempty"`
	NftVerified             Flag              `json:"nft_verified"`
	OversupplyMinting       *Flag             `json:"oversupply_minting,omitempty"`
	PrivilegedBurn          *PrivilegedAction `json:"privileged_burn,omitempty"`
	PrivilegedMinting       *PrivilegedAction `json:"privileged_minting,omitempty"`
	RedCheckMark            *Flag             `json:"red_check_mark,omitempty"`
	RestrictedApproval      *Flag             `json:"restricted_approval,omitempty"`
	Sales24h                json.Number       `json:"sales_24h"`
	SameNfts                []SameNft         `json:"same_nfts"`
	SelfDestruct            *PrivilegedAction `json:"self_destruct,omitempty"`
	TelegramURL             *string           `json:"telegram_url,omitempty"`
	TokenID                 *string           `json:"token_id,omitempty"`
	TokenOwner              *string           `json:"token_owner,omitempty"`
	TotalVolume             json.Number       `json:"total_volume"`
	TradedVolume24h         json.Number       `json:"traded_volume_24h"`
	TransferWithoutApproval *PrivilegedAction `json:"transfer_without_approval,omitempty"`
	TrustList               Flag              `json:"trust_list"`
	TwitterURL              *string           `json:"twitter_url,omitempty"`
	WebsiteURL              *string           `json:"website_url,omitempty"`
}

// PrivilegedAction describes an owner-only capability (mint, burn,
// self-destruct, transfer without approval).
type PrivilegedAction struct {
	OwnerAddress *string `json:"owner_address,omitempty"`
	OwnerType    *string `json:"owner_type,omitempty"`
	Value        *Flag   `json:"value,omitempty"`
}

// SameNft is another collection sharing the queried collection's fingerprint.
type SameNft struct {
	CreateBlockNumber uint64  `json:"create_block_number"`
	NftAddress        string  `json:"nft_address"`
	NftName           string  `json:"nft_name"`
	NftOwnerNumber    uint64  `json:"nft_owner_number"`
	NftSymbol         *string `json:"nft_symbol,omitempty"`
}
