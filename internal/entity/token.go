package entity

import (
	"fmt"
	"github.com/gosimple/slug"
	"time"
)

type Token struct {
	Contract  string    `json:"contract"`
	TokenId   uint64    `json:"tokenId"`
	Owner     string    `json:"owner"`
	TokenUri  string    `json:"tokenUri"`
	MediaType string    `json:"mediaType"`
	MintedAt  time.Time `json:"mintedAt"`
}

func (t Token) Slug() string {
	return CreateTokenSlug(t.TokenId, t.Contract)
}

func CreateTokenSlug(tokenId uint64, contract string) string {
	return slug.Make(fmt.Sprintf("token-%d-%s", tokenId, contract))
}
