package mirror

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/luxgs/eofetch/utils"
)

const uploadPartSize = 8 * 1024 * 1024

// Uploader mirrors completed downloads into an S3 bucket.
type Uploader struct {
	client manager.UploadAPIClient
	bucket string
	prefix string
}

func NewUploader(bucket string, prefix string, region string) (*Uploader, error) {
	profile := os.Getenv("AWS_PROFILE")
	if profile == "" {
		profile = "default"
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithSharedConfigProfile(profile),
		awsconfig.WithRetryMode("adaptive"),
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	return &Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Upload pushes one local file to s3://bucket/prefix/filename.
func (u *Uploader) Upload(filePath string) error {
	log := utils.GetLogger("mirror")
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening file for mirror upload: %v", err)
	}
	defer file.Close()

	key := path.Join(u.prefix, filepath.Base(filePath))
	uploader := manager.NewUploader(u.client, func(up *manager.Uploader) {
		up.PartSize = uploadPartSize
		up.Concurrency = 4
	})
	_, err = uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("error uploading to S3: %v", err)
	}
	log.Debug().Str("bucket", u.bucket).Str("key", key).Msg("Mirror upload completed")
	return nil
}
