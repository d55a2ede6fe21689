package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/klauspost/compress/zstd"
)

// ExportExt is the file extension of exported sessions
const ExportExt = ".json.zst"

// Exporter stores exported sessions and returns where they went
type Exporter interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// EncodeSession serializes a session as zstd-compressed JSON
func EncodeSession(s Session) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	var buf bytes.Buffer
	encoder, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	if _, err := encoder.Write(raw); err != nil {
		encoder.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSession reads a session written by EncodeSession
func DecodeSession(r io.Reader) (Session, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return Session{}, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var s Session
	if err := json.NewDecoder(decoder).Decode(&s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func exportKey(userID, sessionID string) string {
	return fmt.Sprintf("chat-exports/%s/%s%s", sanitize(userID), sanitize(sessionID), ExportExt)
}

// sanitize keeps keys inside their folder
func sanitize(part string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(part)
}

// LocalExporter writes exports below a directory
type LocalExporter struct {
	dir string
}

// NewLocalExporter creates an exporter rooted at dir
func NewLocalExporter(dir string) *LocalExporter {
	return &LocalExporter{dir: dir}
}

// Save writes data to dir/key and returns the file path
func (e *LocalExporter) Save(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(e.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// S3Exporter uploads exports to a bucket
type S3Exporter struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
}

// NewS3Exporter creates an exporter for bucket in region
func NewS3Exporter(bucket, region string) (*S3Exporter, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Exporter{
		s3Client: s3.New(sess),
		bucket:   bucket,
		baseURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}, nil
}

// Save uploads data under key and returns its URL. Exports stay private.
func (e *S3Exporter) Save(ctx context.Context, key string, data []byte) (string, error) {
	_, err := e.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(e.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(data),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("zstd"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", e.baseURL, key), nil
}
