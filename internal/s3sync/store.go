// Package s3sync stores workspace snapshots as JSON objects in an S3 bucket,
// one object per owner.
package s3sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/rpggio/quotestudio/internal/persist"
	"github.com/rpggio/quotestudio/internal/repository"
)

// ObjectAPI is the subset of the S3 client the store needs.
type ObjectAPI interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Options configures the S3 connection.
type Options struct {
	Bucket          string
	Region          string
	Prefix          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Store implements repository.SnapshotRepository on S3.
type Store struct {
	svc    ObjectAPI
	bucket string
	prefix string
}

// New creates a Store backed by a real S3 session.
func New(opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	cfg := &aws.Config{
		Region: aws.String(opts.Region),
	}
	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return NewWithClient(s3.New(sess), opts.Bucket, opts.Prefix), nil
}

// NewWithClient creates a Store on an existing client.
func NewWithClient(svc ObjectAPI, bucket, prefix string) *Store {
	return &Store{svc: svc, bucket: bucket, prefix: prefix}
}

// Key returns the object key holding ownerID's snapshot. The owner id is
// path-escaped so it always names a single object under the prefix.
func (s *Store) Key(ownerID string) string {
	return path.Join(s.prefix, "workspaces", url.PathEscape(ownerID)+".json")
}

// Load fetches and decodes the owner's snapshot.
func (s *Store) Load(ctx context.Context, ownerID string) (*repository.Snapshot, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(ownerID)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}

	snap, err := persist.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	for i := range snap.Projects {
		snap.Projects[i].OwnerID = ownerID
	}
	return snap, nil
}

// Save encodes the snapshot and overwrites the owner's object.
func (s *Store) Save(ctx context.Context, ownerID string, snap *repository.Snapshot) error {
	if snap != nil && snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}
	data, err := persist.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(ownerID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put snapshot object: %w", err)
	}
	return nil
}
