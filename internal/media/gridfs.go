package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"microblog/internal/dbmongo"
)

// GridFSStore keeps media bytes in MongoDB GridFS, using the link as
// the GridFS filename.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(client *dbmongo.MongoClient) *GridFSStore {
	return &GridFSStore{bucket: client.GridFS}
}

func (g *GridFSStore) Write(ctx context.Context, link string, r io.Reader) error {
	stream, err := g.bucket.OpenUploadStream(link)
	if err != nil {
		return fmt.Errorf("gridfs upload failed: %w", err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		stream.Abort()
		return fmt.Errorf("gridfs copy failed: %w", err)
	}
	return stream.Close()
}

func (g *GridFSStore) Open(ctx context.Context, link string) (io.ReadCloser, int64, error) {
	stream, err := g.bucket.OpenDownloadStreamByName(link)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, 0, fmt.Errorf("media %q: %w", link, fs.ErrNotExist)
		}
		return nil, 0, fmt.Errorf("gridfs download failed: %w", err)
	}
	return stream, stream.GetFile().Length, nil
}

func (g *GridFSStore) Remove(ctx context.Context, link string) error {
	var file struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := g.bucket.GetFilesCollection().
		FindOne(ctx, bson.M{"filename": link}).
		Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("media %q: %w", link, fs.ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("gridfs lookup failed: %w", err)
	}
	if err := g.bucket.Delete(file.ID); err != nil {
		return fmt.Errorf("gridfs delete failed: %w", err)
	}
	return nil
}
