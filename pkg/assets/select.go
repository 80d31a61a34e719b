package assets

import (
	"github.com/toastify-dev/toastify/internal/config"
	"github.com/toastify-dev/toastify/internal/errors"
)

// FromConfig selects the icon source named by the configuration: a
// directory when Dir is set, a bucket when S3.Bucket is set, and the
// embedded icons otherwise.
func FromConfig(cfg config.IconsConfig) (Source, error) {
	switch {
	case cfg.Dir != "":
		return Dir(cfg.Dir), nil
	case cfg.S3.Bucket != "":
		client := NewS3Client(S3Config{
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		return S3(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
	case cfg.S3.Prefix != "" || cfg.S3.Endpoint != "":
		return nil, errors.New("T301").
			WithField("icons.s3.bucket").
			WithSuggestion("Set icons.s3.bucket or remove the other icons.s3 settings")
	default:
		return Embedded(), nil
	}
}
