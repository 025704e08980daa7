package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domproduct "example.com/rocketshoes/app/internal/domain/product"
)

// SnapshotVersion is the schema written by EncodeSnapshot.
// Version 1 is the bare item array older clients stored.
const SnapshotVersion = 2

var validate = validator.New()

type snapshotItem struct {
	ID     int64   `json:"id" validate:"gt=0"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int64   `json:"amount" validate:"gte=1"`
}

type snapshot struct {
	Version int            `json:"version" validate:"gte=1"`
	Items   []snapshotItem `json:"items" validate:"unique=ID,dive"`
}

func EncodeSnapshot(c Cart) (string, error) {
	snap := snapshot{
		Version: SnapshotVersion,
		Items:   make([]snapshotItem, 0, len(c)),
	}
	for _, item := range c {
		snap.Items = append(snap.Items, snapshotItem{
			ID:     item.ID,
			Title:  item.Title,
			Price:  item.Price,
			Image:  item.Image,
			Amount: item.Amount,
		})
	}
	if err := validate.Struct(snap); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSnapshot parses a stored snapshot. Blank input is an empty cart.
func DecodeSnapshot(raw string) (Cart, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return Cart{}, nil
	}

	var snap snapshot
	switch raw[0] {
	case '[':
		snap.Version = 1
		if err := json.Unmarshal([]byte(raw), &snap.Items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	case '{':
		var head struct {
			Version int `json:"version"`
		}
		if err := json.Unmarshal([]byte(raw), &head); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		if head.Version > SnapshotVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, head.Version)
		}
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected leading %q", ErrCorruptSnapshot, raw[0])
	}

	if err := validate.Struct(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	c := make(Cart, 0, len(snap.Items))
	for _, item := range snap.Items {
		c = append(c, Item{
			Product: domproduct.Product{
				ID:    item.ID,
				Title: item.Title,
				Price: item.Price,
				Image: item.Image,
			},
			Amount: item.Amount,
		})
	}
	return c, nil
}
