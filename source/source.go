/*
Copyright (C) 2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package source fetches program text for the interpreter: local files,
// objects in S3 compatible storage, optionally xz or lz4 compressed.
package source

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/launix-de/fiblang/fib"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

const s3Scheme = "s3://"

type S3Settings struct {
	AccessKeyID     string // AWS or S3-compatible access key
	SecretAccessKey string // AWS or S3-compatible secret key
	Region          string // AWS region (e.g., "us-east-1")
	Endpoint        string // Custom endpoint for S3-compatible storage (MinIO, etc.)
	ForcePathStyle  bool   // Use path-style URLs (required for MinIO)
}

func S3SettingsFromEnv() S3Settings {
	return S3Settings{
		AccessKeyID:     os.Getenv("FIB_S3_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("FIB_S3_SECRET_KEY"),
		Region:          os.Getenv("FIB_S3_REGION"),
		Endpoint:        os.Getenv("FIB_S3_ENDPOINT"),
		ForcePathStyle:  os.Getenv("FIB_S3_PATH_STYLE") == "1" || os.Getenv("FIB_S3_PATH_STYLE") == "true",
	}
}

type Loader struct {
	S3 S3Settings

	mu     sync.Mutex
	client *s3.Client
}

// Load returns the program text at location. Every failure is a *fib.IOError.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	r, err := l.open(ctx, location)
	if err != nil {
		return nil, &fib.IOError{Path: location, Err: err}
	}
	defer r.Close()
	data, err := io.ReadAll(decompress(r, location))
	if err != nil {
		return nil, &fib.IOError{Path: location, Err: err}
	}
	return data, nil
}

// IsLocal reports whether location is a file on this machine (and can be watched).
func IsLocal(location string) bool {
	return !strings.HasPrefix(location, s3Scheme)
}

func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsLocal(location) {
		return os.Open(location)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, errors.New("s3 location must look like s3://bucket/key")
	}
	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (l *Loader) s3Client(ctx context.Context) (*s3.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client != nil {
		return l.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if l.S3.Region != "" {
		opts = append(opts, config.WithRegion(l.S3.Region))
	}
	if l.S3.AccessKeyID != "" && l.S3.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				l.S3.AccessKeyID,
				l.S3.SecretAccessKey,
				"", // session token
			),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var s3Opts []func(*s3.Options)
	if l.S3.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(l.S3.Endpoint)
		})
	}
	if l.S3.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	l.client = s3.NewFromConfig(cfg, s3Opts...)
	return l.client, nil
}

// decompress picks the codec by file suffix
func decompress(r io.Reader, location string) io.Reader {
	switch {
	case strings.HasSuffix(location, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return errReader{err}
		}
		return xr
	case strings.HasSuffix(location, ".lz4"):
		return lz4.NewReader(r)
	}
	return r
}

type errReader struct {
	err error
}

func (e errReader) Read([]byte) (int, error) {
	return 0, e.err
}
