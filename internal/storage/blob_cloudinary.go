package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary resource types. Audio is stored as "video".
const (
	CloudinaryImage = "image"
	CloudinaryVideo = "video"
)

const cloudinaryPageSize = 500

// CloudinaryBlobStore keeps media under <folder>/<namespace>/<id>.
type CloudinaryBlobStore struct {
	cld          *cloudinary.Cloudinary
	folder       string
	namespace    string
	resourceType string
	httpClient   *http.Client
}

func NewCloudinaryBlobStore(cloudName, apiKey, apiSecret, folder, namespace, resourceType string) (*CloudinaryBlobStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryBlobStore{
		cld:          cld,
		folder:       strings.Trim(folder, "/"),
		namespace:    namespace,
		resourceType: resourceType,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (s *CloudinaryBlobStore) prefix() string {
	if s.folder == "" {
		return s.namespace + "/"
	}
	return s.folder + "/" + s.namespace + "/"
}

func (s *CloudinaryBlobStore) publicID(id string) string {
	return s.prefix() + id
}

func (s *CloudinaryBlobStore) Put(ctx context.Context, id, contentType string, data []byte) (BlobRecord, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     s.publicID(id),
		ResourceType: s.resourceType,
		Overwrite:    &overwrite,
	})
	if err != nil {
		return BlobRecord{}, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return BlobRecord{}, fmt.Errorf("failed to upload to Cloudinary: %s", result.Error.Message)
	}
	return BlobRecord{
		ID:          id,
		Namespace:   s.namespace,
		ContentType: contentType,
		Size:        int64(result.Bytes),
		URL:         result.SecureURL,
		CreatedAt:   result.CreatedAt.UTC(),
	}, nil
}

func (s *CloudinaryBlobStore) Open(ctx context.Context, id string) (BlobRecord, []byte, error) {
	asset, err := s.cld.Admin.Asset(ctx, admin.AssetParams{
		AssetType:    api.AssetType(s.resourceType),
		DeliveryType: api.DeliveryType("upload"),
		PublicID:     s.publicID(id),
	})
	if err != nil {
		return BlobRecord{}, nil, fmt.Errorf("cloudinary asset %s: %w", id, err)
	}
	if err := assetError(id, asset.Error.Message); err != nil {
		return BlobRecord{}, nil, err
	}
	if asset.SecureURL == "" {
		return BlobRecord{}, nil, ErrBlobNotFound
	}
	rec := s.record(asset.PublicID, asset.Format, asset.Bytes, asset.SecureURL, asset.CreatedAt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.SecureURL, nil)
	if err != nil {
		return BlobRecord{}, nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return BlobRecord{}, nil, fmt.Errorf("cloudinary download %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return BlobRecord{}, nil, fmt.Errorf("cloudinary download %s: status %d", id, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return BlobRecord{}, nil, fmt.Errorf("cloudinary download %s: %w", id, err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		rec.ContentType = ct
	}
	return rec, data, nil
}

func (s *CloudinaryBlobStore) Delete(ctx context.Context, id string) error {
	// Destroy answers "not found" for unknown ids; that is success here.
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(id),
		ResourceType: s.resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary delete %s: %w", id, err)
	}
	return nil
}

func (s *CloudinaryBlobStore) ListAll(ctx context.Context) ([]BlobRecord, error) {
	out := make([]BlobRecord, 0)
	cursor := ""
	for {
		res, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
			AssetType:    api.AssetType(s.resourceType),
			DeliveryType: "upload",
			Prefix:       s.prefix(),
			MaxResults:   cloudinaryPageSize,
			NextCursor:   cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("cloudinary list: %w", err)
		}
		if res.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary list: %s", res.Error.Message)
		}
		for _, a := range res.Assets {
			out = append(out, s.record(a.PublicID, a.Format, a.Bytes, a.SecureURL, a.CreatedAt))
		}
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	// Admin API returns newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// assetError maps an Admin API error message. Only "Resource not found" means
// the blob is missing; rate limits and auth failures are real errors.
func assetError(id, message string) error {
	switch {
	case message == "":
		return nil
	case strings.HasPrefix(strings.ToLower(message), "resource not found"):
		return ErrBlobNotFound
	default:
		return fmt.Errorf("cloudinary asset %s: %s", id, message)
	}
}

func (s *CloudinaryBlobStore) record(publicID, format string, size int, url string, createdAt time.Time) BlobRecord {
	ct := ""
	if format != "" {
		ct = mime.TypeByExtension("." + format)
	}
	return BlobRecord{
		ID:          strings.TrimPrefix(publicID, s.prefix()),
		Namespace:   s.namespace,
		ContentType: ct,
		Size:        int64(size),
		URL:         url,
		CreatedAt:   createdAt.UTC(),
	}
}
