package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type gridfsFile struct {
	ID         string    `bson:"_id"`
	Length     int64     `bson:"length"`
	UploadDate time.Time `bson:"uploadDate"`
	Metadata   struct {
		ContentType string `bson:"content_type"`
	} `bson:"metadata"`
}

func (f gridfsFile) record(namespace string) BlobRecord {
	return BlobRecord{
		ID:          f.ID,
		Namespace:   namespace,
		ContentType: f.Metadata.ContentType,
		Size:        f.Length,
		CreatedAt:   f.UploadDate.UTC(),
	}
}

// GridFSBlobStore keeps media in a GridFS bucket named after the namespace.
type GridFSBlobStore struct {
	bucket    *gridfs.Bucket
	files     *mongo.Collection
	namespace string
}

func NewGridFSBlobStore(db *mongo.Database, namespace string) (*GridFSBlobStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(namespace))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket %s: %w", namespace, err)
	}
	return &GridFSBlobStore{
		bucket:    bucket,
		files:     db.Collection(namespace + ".files"),
		namespace: namespace,
	}, nil
}

func (s *GridFSBlobStore) Put(ctx context.Context, id, contentType string, data []byte) (BlobRecord, error) {
	if err := ctx.Err(); err != nil {
		return BlobRecord{}, err
	}
	// GridFS has no upsert; replace by deleting first.
	if err := s.Delete(ctx, id); err != nil {
		return BlobRecord{}, err
	}
	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": contentType})
	if err := s.bucket.UploadFromStreamWithID(id, id, bytes.NewReader(data), opts); err != nil {
		return BlobRecord{}, fmt.Errorf("gridfs put %s: %w", id, err)
	}
	rec, err := s.stat(ctx, id)
	if err != nil {
		return BlobRecord{}, err
	}
	return rec, nil
}

func (s *GridFSBlobStore) stat(ctx context.Context, id string) (BlobRecord, error) {
	var f gridfsFile
	err := s.files.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return BlobRecord{}, ErrBlobNotFound
	}
	if err != nil {
		return BlobRecord{}, fmt.Errorf("gridfs stat %s: %w", id, err)
	}
	return f.record(s.namespace), nil
}

func (s *GridFSBlobStore) Open(ctx context.Context, id string) (BlobRecord, []byte, error) {
	rec, err := s.stat(ctx, id)
	if err != nil {
		return BlobRecord{}, nil, err
	}
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(id, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return BlobRecord{}, nil, ErrBlobNotFound
		}
		return BlobRecord{}, nil, fmt.Errorf("gridfs open %s: %w", id, err)
	}
	return rec, buf.Bytes(), nil
}

func (s *GridFSBlobStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.bucket.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("gridfs delete %s: %w", id, err)
	}
	return nil
}

func (s *GridFSBlobStore) ListAll(ctx context.Context) ([]BlobRecord, error) {
	cursor, err := s.files.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "uploadDate", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gridfs list: %w", err)
	}
	defer cursor.Close(ctx)

	var files []gridfsFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("gridfs list: %w", err)
	}
	out := make([]BlobRecord, 0, len(files))
	for _, f := range files {
		out = append(out, f.record(s.namespace))
	}
	return out, nil
}
