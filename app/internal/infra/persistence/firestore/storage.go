package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	pkgerrors "github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Storage keeps each key as one document whose id is the key.
//
// Collection layout:
// - collection: storefront (configurable)
// - docId: key with "/" replaced, since ids cannot contain it
// - fields: value(string)
type Storage struct {
	Client     *firestore.Client
	Collection string
}

func NewStorage(client *firestore.Client, collection string) *Storage {
	if collection == "" {
		collection = "storefront"
	}
	return &Storage{Client: client, Collection: collection}
}

type kvDoc struct {
	Value string `firestore:"value"`
}

func docID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.Client == nil {
		return "", false, errors.New("firestore storage: client is nil")
	}

	snap, err := s.Client.Collection(s.Collection).Doc(docID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrapf(err, "get %q", key)
	}

	var doc kvDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", false, pkgerrors.Wrapf(err, "decode %q", key)
	}
	return doc.Value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if s == nil || s.Client == nil {
		return errors.New("firestore storage: client is nil")
	}

	_, err := s.Client.Collection(s.Collection).Doc(docID(key)).Set(ctx, kvDoc{Value: value})
	return pkgerrors.Wrapf(err, "set %q", key)
}
