package domain

import "github.com/aussiebroadwan/tollgate/pkg/cryptox"

// ContentItem is a single entry of the premium catalog.
type ContentItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PremiumContent is the payload delivered to entitled identities.
type PremiumContent struct {
	Message string        `json:"msg"`
	Content []ContentItem `json:"content"`
}

// Envelope carries a payload either sealed under the caller's session key or,
// when no key has been established, in the clear with Encrypted=false.
type Envelope struct {
	Encrypted bool
	Sealed    *cryptox.Sealed
	Plain     any
}
