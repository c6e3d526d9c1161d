package repository

import "context"

// BlobStore fetches UTF-8 text blobs by key.
// A missing key is reported as found=false with a nil error.
type BlobStore interface {
	Fetch(ctx context.Context, key string) (text string, found bool, err error)
}

// BlobKey builds the object key for a content item: <namespace>/<contentID>.<ext>.
func BlobKey(namespace, contentID, ext string) string {
	return namespace + "/" + contentID + "." + ext
}
