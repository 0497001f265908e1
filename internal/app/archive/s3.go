package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"shiftchat/internal/pkg/logx"
)

// s3Archive implements Service against an S3-compatible object store.
type s3Archive struct {
	cfg      ServiceConfig
	client   *s3.Client
	uploader *manager.Uploader
}

// newS3Archive initializes the S3 client with static credentials and a custom
// endpoint, so self-hosted S3-compatible stores work too.
func newS3Archive(cfg ServiceConfig) (*s3Archive, error) {
	sdkCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config")
		return nil, errors.New("failed to initialize archive client configuration")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Archive{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// SnapshotKey returns the archive object key for a room's history snapshot.
func SnapshotKey(roomID int64) string {
	return fmt.Sprintf("history/%d.txt", roomID)
}

// Put uploads the snapshot body under key, overwriting any previous object.
func (a *s3Archive) Put(ctx context.Context, key string, body io.Reader) error {
	contentType := "text/plain; charset=utf-8"

	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &a.cfg.S3BucketName,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		logx.Error(err, "Archive upload failed", "key", key)
		return errors.New("failed to upload history snapshot")
	}

	return nil
}

// PresignDownload generates a presigned URL for fetching the archived snapshot.
func (a *s3Archive) PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(a.client)

	resp, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &a.cfg.S3BucketName,
		Key:    &key,
	}, s3.WithPresignExpires(duration))
	if err != nil {
		logx.Error(err, "Failed to presign archive download", "key", key)
		return "", errors.New("failed to generate archive download URL")
	}

	return resp.URL, nil
}

// Delete removes the archived snapshot with the given key.
func (a *s3Archive) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &a.cfg.S3BucketName,
		Key:    &key,
	})
	if err != nil {
		logx.Error(err, "Archive delete failed", "key", key)
		return errors.New("failed to delete archived snapshot")
	}

	return nil
}
