// SPDX-License-Identifier: MPL-2.0

package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/electroair/bundler/pkg/types"
)

const zipContentType = "application/zip"

var (
	// ErrInvalidObjectURL is returned for s3:// destinations without bucket or key.
	ErrInvalidObjectURL = errors.New("invalid object URL")
	// ErrNoRemote is returned for s3:// destinations when no endpoint is configured.
	ErrNoRemote = errors.New("no remote endpoint configured")
)

type objectSink struct {
	client *minio.Client
	bucket string
	key    string
}

// ParseObjectURL splits "s3://bucket/key" into bucket and key.
func ParseObjectURL(dest types.FilesystemPath) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(dest.String(), types.RemoteScheme)
	if !ok {
		return "", "", fmt.Errorf("%w %q: missing %s prefix", ErrInvalidObjectURL, dest, types.RemoteScheme)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w %q: expected s3://bucket/key", ErrInvalidObjectURL, dest)
	}
	return bucket, key, nil
}

func newObjectSink(dest types.FilesystemPath, remote Remote) (*objectSink, error) {
	bucket, key, err := ParseObjectURL(dest)
	if err != nil {
		return nil, err
	}
	if remote.Endpoint == "" {
		return nil, ErrNoRemote
	}

	client, err := minio.New(remote.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(remote.AccessKey, remote.SecretKey, ""),
		Secure: remote.Secure,
		Region: remote.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &objectSink{client: client, bucket: bucket, key: key}, nil
}

// put serializes into memory and uploads in one request, so a failed upload
// never leaves a partial object behind.
func (s *objectSink) put(ctx context.Context, payload func(io.Writer) (int64, error)) (*Report, error) {
	var buf bytes.Buffer
	size, err := payload(&buf)
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(buf.Bytes()), size, minio.PutObjectOptions{
		ContentType: zipContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload bundle: %w", err)
	}

	return &Report{Destination: types.RemoteScheme + s.bucket + "/" + s.key, Size: size}, nil
}
