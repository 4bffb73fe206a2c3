package vo

import "fmt"

type ProductStatus string

const (
	ProductStatusAvailable    ProductStatus = "AVAILABLE"
	ProductStatusNotAvailable ProductStatus = "NOT_AVAILABLE"
	ProductStatusLastPieces   ProductStatus = "LAST_PIECES"
)

func ParseProductStatus(s string) (ProductStatus, error) {
	switch st := ProductStatus(s); st {
	case ProductStatusAvailable, ProductStatusNotAvailable, ProductStatusLastPieces:
		return st, nil
	}
	return "", fmt.Errorf("unknown product status %q", s)
}

func (s ProductStatus) String() string { return string(s) }
