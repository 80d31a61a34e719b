package assets

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// maxIconSize bounds a single icon object.
const maxIconSize = 256 << 10

// ObjectGetter is the subset of *s3.Client used to fetch icons.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads icon objects from an S3 bucket.
//
// Example:
//
//	client := assets.NewS3Client(assets.S3Config{Region: "eu-west-1"})
//	src := assets.S3(client, "brand-assets", "toastify/icons/")
//	icons, err := src.Load(ctx)
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string
}

// S3 creates an S3 icon source. prefix is prepended to "<type>.svg".
func S3(client ObjectGetter, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Describe implements Source.
func (s *S3Source) Describe() string { return "s3://" + s.bucket + "/" + s.prefix }

// Load implements Source. Missing objects fall back to the embedded icon.
func (s *S3Source) Load(ctx context.Context) (toast.Icons, error) {
	icons := toast.DefaultIcons()
	for _, k := range iconTypes() {
		key := s.prefix + fileName(k)
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var missing *types.NoSuchKey
			if stderrors.As(err, &missing) {
				continue
			}
			return nil, errors.New("T300").WithField(key).Wrap(err)
		}

		data, err := io.ReadAll(io.LimitReader(out.Body, maxIconSize))
		out.Body.Close()
		if err != nil {
			return nil, errors.New("T300").WithField(key).Wrap(err)
		}
		if markup := strings.TrimSpace(string(data)); markup != "" {
			icons[k] = markup
		}
	}
	return icons, nil
}

// S3Config configures NewS3Client.
type S3Config struct {
	// Region is the bucket region. Default: $AWS_REGION, then "us-east-1".
	Region string

	// Endpoint overrides the service endpoint (MinIO, LocalStack, ...).
	Endpoint string

	// UsePathStyle addresses buckets as <endpoint>/<bucket>.
	UsePathStyle bool
}

// NewS3Client builds an S3 client using static credentials from the
// standard AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables. Without credentials requests are sent anonymously,
// which works for public buckets.
func NewS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	awsCfg := aws.Config{Region: region}
	if id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); id != "" && secret != "" {
		token := os.Getenv("AWS_SESSION_TOKEN")
		awsCfg.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     id,
				SecretAccessKey: secret,
				SessionToken:    token,
				Source:          "environment",
			}, nil
		})
	} else {
		awsCfg.Credentials = aws.AnonymousCredentials{}
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
}
