package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/OFFIS-RIT/flavor/backend/internal/config"
	"github.com/OFFIS-RIT/flavor/backend/internal/util"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("remote backups are not configured")

// LinkExpiry is how long a presigned download link stays valid.
const LinkExpiry = 15 * time.Minute

const csvContentType = "text/csv; charset=utf-8"

// ObjectAPI is the part of the S3 client the backups need.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner creates temporary download links.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Backup describes one stored snapshot of the database.
type Backup struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url,omitempty"`
}

// Backups stores CSV exports of the database in an S3 bucket.
type Backups struct {
	client    ObjectAPI
	presigner Presigner
	bucket    string
	prefix    string

	group singleflight.Group
	now   func() time.Time
}

// NewS3Client creates a path-style S3 client for the configured endpoint.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client, nil
}

// NewBackups wires the backup store to an S3 client.
func NewBackups(client *s3.Client, cfg config.S3Config) *Backups {
	return newBackups(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Prefix)
}

func newBackups(client ObjectAPI, presigner Presigner, bucket, prefix string) *Backups {
	return &Backups{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		now:       time.Now,
	}
}

// Enabled reports whether a bucket is configured.
func (b *Backups) Enabled() bool {
	return b != nil && b.bucket != ""
}

func (b *Backups) newKey() (string, error) {
	id, err := gonanoid.New(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate backup id: %w", err)
	}
	name := fmt.Sprintf("%s-%s.csv", b.now().UTC().Format("20060102T150405Z"), id)
	if b.prefix == "" {
		return name, nil
	}
	return path.Join(b.prefix, name), nil
}

// Put uploads one export. Concurrent calls share a single upload; every
// caller receives the key of that upload. The write function is called once
// per upload and must produce the full CSV. The upload outlives the
// cancellation of the caller that started it.
func (b *Backups) Put(ctx context.Context, write func(io.Writer) error) (string, error) {
	if !b.Enabled() {
		return "", ErrDisabled
	}

	res, err, shared := b.group.Do("backup", func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return "", fmt.Errorf("failed to export database: %w", err)
		}
		key, err := b.newKey()
		if err != nil {
			return "", err
		}
		body := buf.Bytes()

		err = util.RetryErrWithContext(ctx, 3, 500*time.Millisecond, func(ctx context.Context) error {
			_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(b.bucket),
				Key:         aws.String(key),
				Body:        bytes.NewReader(body),
				ContentType: aws.String(csvContentType),
			})
			return err
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload backup to S3: %w", err)
		}
		logger.Info("Uploaded database backup", "key", key, "bytes", len(body))
		return key, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Backup request joined a running upload")
	}
	return res.(string), nil
}

// Get downloads a stored backup.
func (b *Backups) Get(ctx context.Context, key string) ([]byte, error) {
	if !b.Enabled() {
		return nil, ErrDisabled
	}
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get backup from S3: %w", err)
	}
	defer result.Body.Close()

	content, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup contents: %w", err)
	}
	return content, nil
}

// List returns all backups below the prefix, newest first.
func (b *Backups) List(ctx context.Context) ([]Backup, error) {
	if !b.Enabled() {
		return nil, ErrDisabled
	}

	prefix := b.prefix
	if prefix != "" {
		prefix += "/"
	}
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}

	backups := make([]Backup, 0)
	for {
		listOutput, err := b.client.ListObjectsV2(ctx, listInput)
		if err != nil {
			return nil, fmt.Errorf("failed to list backups with prefix %s: %w", prefix, err)
		}

		for _, obj := range listOutput.Contents {
			if obj.Key == nil {
				continue
			}
			backup := Backup{Key: *obj.Key}
			if obj.Size != nil {
				backup.Size = *obj.Size
			}
			if obj.LastModified != nil {
				backup.LastModified = *obj.LastModified
			}
			backups = append(backups, backup)
		}

		if listOutput.IsTruncated != nil && *listOutput.IsTruncated {
			listInput.ContinuationToken = listOutput.NextContinuationToken
		} else {
			break
		}
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Key > backups[j].Key
	})
	return backups, nil
}

// Link presigns a download URL for a backup.
func (b *Backups) Link(ctx context.Context, key string) (string, error) {
	if !b.Enabled() {
		return "", ErrDisabled
	}
	out, err := b.presigner.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket:                     aws.String(b.bucket),
			Key:                        aws.String(key),
			ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
		},
		s3.WithPresignExpires(LinkExpiry),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}
	if _, err := url.Parse(out.URL); err != nil {
		return "", fmt.Errorf("failed to parse presigned url: %w", err)
	}
	return out.URL, nil
}
