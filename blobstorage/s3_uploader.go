// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package blobstorage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/l3montree-dev/reviewboard/monitoring"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/pkg/errors"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

// GetS3ConfigFromEnv reads the S3_* variables. ok is false if no bucket is
// configured.
func GetS3ConfigFromEnv() (S3Config, bool) {
	cfg := S3Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    os.Getenv("S3_REGION"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		PublicURL: strings.TrimSuffix(os.Getenv("S3_PUBLIC_URL"), "/"),
	}
	if cfg.Region == "" {
		cfg.Region = "eu-central-1"
	}
	return cfg, cfg.Bucket != ""
}

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Uploader struct {
	uploader  objectUploader
	bucket    string
	publicURL string
}

var _ shared.BlobUploader = (*S3Uploader)(nil)

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.Wrap(err, "could not load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// minio and other self hosted stores
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload stores body under key and returns the URL of the object.
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, size int64, onProgress shared.ProgressFunc) (string, error) {
	out, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   newProgressReader(body, size, onProgress),
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not upload %s", key)
	}
	monitoring.FileUploadBytes.Add(float64(size))
	slog.Info("uploaded file", "key", key, "size", size)

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return out.Location, nil
}
