package ports

import "github.com/layer-3/goplus/core"

// Tokenizer converts between gateway callers and bearer tokens
type Tokenizer interface {
	CallerToToken(caller *core.Caller) (string, error)
	TokenToCaller(token string) (*core.Caller, error)
}
