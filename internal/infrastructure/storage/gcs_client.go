package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const (
	qrCodePrefix   = "public/qr-codes"
	qrCacheControl = "public, max-age=86400"
)

// QRPublisher writes rendered wishlist codes to a bucket readable by anyone
// holding the link.
type QRPublisher struct {
	client *storage.Client
	bucket string
}

func NewQRPublisher(ctx context.Context, bucket string, opts ...option.ClientOption) (*QRPublisher, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &QRPublisher{client: client, bucket: bucket}, nil
}

// PublishQRCode stores png under the wishlist id and returns its public URL.
// Publishing the same id again overwrites the object.
func (p *QRPublisher) PublishQRCode(ctx context.Context, wishlistID string, png []byte) (string, error) {
	name := ObjectName(wishlistID)
	obj := p.client.Bucket(p.bucket).Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = "image/png"
	w.CacheControl = qrCacheControl
	if _, err := w.Write(png); err != nil {
		w.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", name, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("make %s public: %w", name, err)
	}

	return PublicURL(p.bucket, name), nil
}

// ObjectName maps a wishlist id to its object path. Path separators in the id
// are flattened so a code can never land outside the prefix.
func ObjectName(wishlistID string) string {
	id := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSuffix(wishlistID, ".png"))
	return path.Join(qrCodePrefix, id+".png")
}

func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName)
}

func (p *QRPublisher) Close() error {
	return p.client.Close()
}
