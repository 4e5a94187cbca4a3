package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Listing is one token offered for sale. The engine holds the token in
// custody for the lifetime of the listing. Price is in the smallest
// currency unit and is always non-zero for a live listing.
type Listing struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Price    uint64 `json:"price"`
	Seller   string `json:"seller"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.TokenId, l.Contract)
}

func CreateListingSlug(tokenId uint64, contract string) string {
	return slug.Make(fmt.Sprintf("listing-%d-%s", tokenId, contract))
}
