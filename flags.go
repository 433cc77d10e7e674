package goplus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Flag is a boolean-like wire value. Depending on the endpoint the remote
// sends it as a numeric string ("1") or as a small integer (1). Flag keeps
// the text and the form it arrived in so it re-encodes unchanged.
type Flag struct {
	raw    string
	quoted bool
}

// StringFlag builds a flag that encodes as a JSON string.
func StringFlag(s string) Flag { return Flag{raw: s, quoted: true} }

// NumberFlag builds a flag that encodes as a JSON number.
func NumberFlag(n int64) Flag { return Flag{raw: strconv.FormatInt(n, 10)} }

// String returns the text as received, without quotes.
func (f Flag) String() string { return f.raw }

// Quoted reports whether the value arrived as a JSON string.
func (f Flag) Quoted() bool { return f.quoted }

// IsZero reports an unset flag.
func (f Flag) IsZero() bool { return f.raw == "" && !f.quoted }

// Bool interprets "1" as true and "0" as false. ok is false for any other text.
func (f Flag) Bool() (value bool, ok bool) {
	switch strings.TrimSpace(f.raw) {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return false, false
}

// Int parses the flag as an integer.
func (f Flag) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(f.raw), 10, 64)
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("flag: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag{raw: s, quoted: true}
		return nil
	case 'n':
		*f = Flag{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flag: expected string or number, got %s", data)
	}
	*f = Flag{raw: n.String()}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f.quoted {
		return json.Marshal(f.raw)
	}
	if f.raw == "" {
		return []byte("null"), nil
	}
	return []byte(f.raw), nil
}

// ParseDecimal converts one of the remote's numeric strings (tax, percent,
// balance) into an arbitrary-precision decimal. Empty strings are an error.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, fmt.Errorf("parse decimal: empty value")
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

// NormalizeAddress lower-cases EVM hex addresses the way the remote keys its
// token maps. Anything else (base58 Solana mints, for instance) is returned unchanged.
func NormalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if common.IsHexAddress(addr) {
		return strings.ToLower(common.HexToAddress(addr).Hex())
	}
	return addr
}

// JoinAddresses joins several addresses with the separator the remote documents.
func JoinAddresses(addrs ...string) string {
	return strings.Join(addrs, ",")
}
